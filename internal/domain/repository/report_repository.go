package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotalsResult agregado de ventas de un período.
type SalesTotalsResult struct {
	Revenue      decimal.Decimal
	Transactions int
	Units        int
}

// TopProductResult producto ordenado por unidades vendidas.
type TopProductResult struct {
	ProductID    string
	ProductName  string
	CategoryName string
	Quantity     int
	Revenue      decimal.Decimal
	Stock        int // stock actual
}

// CategorySalesResult ventas agrupadas por categoría.
type CategorySalesResult struct {
	CategoryID   string
	CategoryName string
	ProductCount int // productos distintos con ventas
	Revenue      decimal.Decimal
	Quantity     int
}

// DailySalesResult ventas de un día de calendario.
type DailySalesResult struct {
	Day     time.Time
	Revenue decimal.Decimal
	Count   int
}

// ProductCountsResult contadores del catálogo.
type ProductCountsResult struct {
	Total    int
	Active   int
	LowStock int // activos con stock bajo
}

// ReportRepository define las consultas de lectura para dashboard y reportes.
// Las implementaciones son read-only. Limit y Offset del filtro se ignoran.
type ReportRepository interface {
	// SalesTotals usa COALESCE: sin ventas devuelve ceros.
	SalesTotals(ctx context.Context, filter SaleFilter) (SalesTotalsResult, error)
	// TopProducts ordena por cantidad vendida descendente.
	TopProducts(ctx context.Context, filter SaleFilter, limit int) ([]TopProductResult, error)
	// SalesByCategory ordena por ingreso descendente.
	SalesByCategory(ctx context.Context, filter SaleFilter) ([]CategorySalesResult, error)
	// DailySales solo incluye los días con ventas, en orden cronológico.
	DailySales(ctx context.Context, filter SaleFilter) ([]DailySalesResult, error)
	ProductCounts(ctx context.Context) (ProductCountsResult, error)
}
