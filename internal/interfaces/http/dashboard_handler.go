package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ecommerce-dashboard-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats devuelve contadores del catálogo, ventas de hoy y del mes, y los más vendidos.
// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesChart ventas diarias de los últimos ?days días (30 por defecto).
// GET /api/dashboard/sales-chart
func (h *DashboardHandler) SalesChart(c *fiber.Ctx) error {
	days, err := queryInt(c, "days", appanalytics.DefaultChartDays)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SalesChart(c.UserContext(), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProductsChart los ?limit productos más vendidos (10 por defecto).
// GET /api/dashboard/products-chart
func (h *DashboardHandler) ProductsChart(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit", appanalytics.DefaultChartProducts)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ProductsChart(c.UserContext(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CategoriesChart ventas por categoría.
// GET /api/dashboard/categories-chart
func (h *DashboardHandler) CategoriesChart(c *fiber.Ctx) error {
	out, err := h.uc.CategoriesChart(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
