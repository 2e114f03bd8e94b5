package ports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
)

// SalesReportData datos ya consultados para el reporte de ventas.
type SalesReportData struct {
	Store       *entity.StoreSettings
	Period      entity.DateRange
	Filters     []string // descripción legible de los filtros aplicados
	GeneratedAt time.Time
	Totals      repository.SalesTotalsResult
	Sales       []*entity.Sale
	TopProducts []repository.TopProductResult
	Categories  []repository.CategorySalesResult
}

// StockSummary contadores del reporte de stock.
type StockSummary struct {
	Products       int
	OutOfStock     int
	Low            int
	OK             int
	Units          int
	InventoryValue decimal.Decimal // Σ precio × stock
}

// StockReportData datos ya consultados para el reporte de stock.
type StockReportData struct {
	Store       *entity.StoreSettings
	OnlyLow     bool
	Filters     []string
	GeneratedAt time.Time
	Products    []*entity.Product
	Summary     StockSummary
}

// ReportRenderer define el puerto de salida que convierte los datos de un reporte en un documento.
// La implementación (maroto) no consulta la base de datos.
type ReportRenderer interface {
	RenderSalesReport(data *SalesReportData) ([]byte, error)
	RenderStockReport(data *StockReportData) ([]byte, error)
}
