package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta. Sin precio se usa el precio actual del producto.
type CreateSaleRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,gt=0"`
	Notes     string           `json:"notes" validate:"max=2000"`
}

// UpdateSaleRequest entrada para editar una venta (parcial). La fecha de venta no se modifica.
type UpdateSaleRequest struct {
	ProductID *string          `json:"product_id" validate:"omitempty,uuid"`
	Quantity  *int             `json:"quantity" validate:"omitempty,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,gt=0"`
	Notes     *string          `json:"notes" validate:"omitempty,max=2000"`
}

// SaleFilterRequest filtros de GET /api/sales. Fechas en formato YYYY-MM-DD, inclusivas.
type SaleFilterRequest struct {
	PageRequest
	ProductID  string `query:"product_id" validate:"omitempty,uuid"`
	CategoryID string `query:"category_id" validate:"omitempty,uuid"`
	DateFrom   string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo     string `query:"date_to" validate:"omitempty,datetime=2006-01-02"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	CategoryName string          `json:"category_name"`
	ProductStock int             `json:"product_stock"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalValue   decimal.Decimal `json:"total_value"`
	SoldAt       time.Time       `json:"sold_at"`
	Notes        string          `json:"notes"`
}

// SaleListResponse lista paginada de ventas con totales del filtro completo.
type SaleListResponse struct {
	Items         []SaleResponse  `json:"items"`
	Page          PageResponse    `json:"page"`
	TotalValue    decimal.Decimal `json:"total_value"`
	TotalQuantity int             `json:"total_quantity"`
}
