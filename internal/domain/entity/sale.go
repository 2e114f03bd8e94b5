package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale registra la venta de un producto. TotalValue siempre es UnitPrice × Quantity.
type Sale struct {
	ID         string
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalValue decimal.Decimal
	SoldAt     time.Time // asignado por el servidor al crear; inmutable
	Notes      string

	// Campos de solo lectura (join con products/categories)
	ProductName  string
	CategoryName string
	ProductStock int
}
