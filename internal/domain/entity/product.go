package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold umbral por debajo del cual el stock se considera bajo.
const LowStockThreshold = 10

// Clasificación del nivel de stock de un producto.
const (
	StockStatusOutOfStock = "OUT_OF_STOCK"
	StockStatusLow        = "LOW"
	StockStatusOK         = "OK"
)

// Product representa un producto del catálogo con su precio y stock vigentes.
// Stock solo cambia mediante el ciclo de vida de las ventas o una reposición explícita.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta (> 0, 2 decimales)
	Stock       int             // unidades disponibles (>= 0)
	CategoryID  string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	CategoryName string // solo lectura (join)
}

// LowStock indica si el stock está por debajo del umbral.
func (p *Product) LowStock() bool {
	return p.Stock < LowStockThreshold
}

// AvailableForSale indica si el producto puede venderse.
func (p *Product) AvailableForSale() bool {
	return p.Active && p.Stock > 0
}

// StockStatus clasifica el nivel de stock del producto.
func (p *Product) StockStatus() string {
	return ClassifyStock(p.Stock)
}

// ClassifyStock: 0 → OUT_OF_STOCK; 1..9 → LOW; resto → OK.
func ClassifyStock(stock int) string {
	switch {
	case stock <= 0:
		return StockStatusOutOfStock
	case stock < LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusOK
	}
}
