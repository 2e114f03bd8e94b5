package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0"`
	Stock       int             `json:"stock" validate:"min=0"`
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	Active      *bool           `json:"active"` // por defecto true
}

// UpdateProductRequest entrada para actualizar un producto. Stock permite reponer inventario.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	Stock       *int             `json:"stock" validate:"omitempty,min=0"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	Active      *bool            `json:"active"`
}

// ProductFilterRequest filtros de GET /api/products.
type ProductFilterRequest struct {
	PageRequest
	Active     *bool  `query:"active"`
	CategoryID string `query:"category_id" validate:"omitempty,uuid"`
	LowStock   bool   `query:"low_stock"`
	Search     string `query:"search" validate:"max=200"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Stock            int             `json:"stock"`
	CategoryID       string          `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	Active           bool            `json:"active"`
	LowStock         bool            `json:"low_stock"`
	AvailableForSale bool            `json:"available_for_sale"`
	StockStatus      string          `json:"stock_status"` // OUT_OF_STOCK | LOW | OK
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductDetailResponse producto con su historial reciente de ventas.
type ProductDetailResponse struct {
	ProductResponse
	TotalSold   int            `json:"total_sold"`
	RecentSales []SaleResponse `json:"recent_sales"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
