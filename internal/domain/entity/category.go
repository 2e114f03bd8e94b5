package entity

import "time"

// Category representa una categoría de productos del catálogo.
type Category struct {
	ID          string
	Name        string // único
	Description string
	Active      bool
	CreatedAt   time.Time

	ProductCount int // productos activos de la categoría (solo lectura)
}
