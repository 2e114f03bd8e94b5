package dto

// ReportParamDTO parámetro aceptado por un reporte.
type ReportParamDTO struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ReportInfoDTO reporte disponible en GET /api/reports.
type ReportInfoDTO struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	URL         string           `json:"url"`
	Format      string           `json:"format"`
	Params      []ReportParamDTO `json:"params"`
}

// SalesReportRequest parámetros de GET /api/reports/sales/pdf.
type SalesReportRequest struct {
	DateFrom   string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo     string `query:"date_to" validate:"omitempty,datetime=2006-01-02"`
	CategoryID string `query:"category_id" validate:"omitempty,uuid"`
	ProductID  string `query:"product_id" validate:"omitempty,uuid"`
}

// StockReportRequest parámetros de GET /api/reports/stock/pdf.
type StockReportRequest struct {
	OnlyLow    bool   `query:"only_low"`
	CategoryID string `query:"category_id" validate:"omitempty,uuid"`
}
