package dto

import "github.com/shopspring/decimal"

// NotAvailable valor informado cuando no hay ventas para calcular un ranking.
const NotAvailable = "N/A"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalProducts    int `json:"total_products"`
	ActiveProducts   int `json:"active_products"`
	LowStockProducts int `json:"low_stock_products"`

	// Ventas del día actual y del mes en curso (día 1 – hoy)
	TodayRevenue decimal.Decimal `json:"today_revenue"`
	TodayCount   int             `json:"today_count"`
	MonthRevenue decimal.Decimal `json:"month_revenue"`
	MonthCount   int             `json:"month_count"`

	// Rankings históricos por unidades vendidas ("N/A" si no hay ventas)
	BestSellingProduct  string `json:"best_selling_product"`
	BestSellingCategory string `json:"best_selling_category"`
}

// SalesChartPointDTO punto del gráfico de ventas diarias.
type SalesChartPointDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

// ProductChartItemDTO producto del gráfico de más vendidos.
type ProductChartItemDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	CurrentStock int             `json:"current_stock"`
}

// CategoryChartItemDTO ventas agrupadas por categoría.
type CategoryChartItemDTO struct {
	CategoryID   string          `json:"category_id"`
	Category     string          `json:"category"`
	ProductCount int             `json:"product_count"`
	Revenue      decimal.Decimal `json:"revenue"`
	QuantitySold int             `json:"quantity_sold"`
}
