package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ecommerce-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/dto"
)

// ReportHandler sirve los reportes PDF.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// List godoc
// @Summary      Reportes disponibles y sus parámetros
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.ReportInfoDTO
// @Router       /api/reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.Available())
}

// Sales godoc
// @Summary      Reporte de ventas en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        date_from    query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        date_to      query  string  false  "Fecha final YYYY-MM-DD"
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales/pdf [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	in := dto.SalesReportRequest{
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
		CategoryID: c.Query("category_id"),
		ProductID:  c.Query("product_id"),
	}
	if err := validateStruct(&in); err != nil {
		return respondError(c, err)
	}
	report, err := h.uc.SalesReport(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendReport(c, report)
}

// Stock godoc
// @Summary      Reporte de stock en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        only_low     query  bool    false  "Solo stock bajo"
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock/pdf [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	onlyLow, err := queryBool(c, "only_low")
	if err != nil {
		return respondError(c, err)
	}
	in := dto.StockReportRequest{
		OnlyLow:    onlyLow != nil && *onlyLow,
		CategoryID: c.Query("category_id"),
	}
	if err := validateStruct(&in); err != nil {
		return respondError(c, err)
	}
	report, err := h.uc.StockReport(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendReport(c, report)
}

func sendReport(c *fiber.Ctx, r *appanalytics.Report) error {
	c.Set(fiber.HeaderContentType, r.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, r.Filename))
	return c.Send(r.Content)
}
