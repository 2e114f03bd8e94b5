package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ecommerce-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/sales"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	Version     string
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	Ledger      *sales.LedgerUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
	SettingsUC  *usecase.SettingsUseCase
	PostalUC    *usecase.PostalUseCase
	JWTSecret   string // vacío = API abierta
	JWTIssuer   string
	// Ping verifica el almacenamiento en GET /health (opcional).
	Ping func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	api.Get("/", apiRootHandler(deps))

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// low-stock antes de /:id
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.Ledger)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", saleHandler.Delete)

	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/sales-chart", dashboardHandler.SalesChart)
	dashboard.Get("/products-chart", dashboardHandler.ProductsChart)
	dashboard.Get("/categories-chart", dashboardHandler.CategoriesChart)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/", reportHandler.List)
	reports.Get("/sales/pdf", reportHandler.Sales)
	reports.Get("/stock/pdf", reportHandler.Stock)

	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	api.Get("/settings", settingsHandler.Get)
	api.Put("/settings", settingsHandler.Update)

	// health antes de /:cep
	postal := api.Group("/postal-codes")
	postalHandler := NewPostalHandler(deps.PostalUC)
	postal.Get("/health", postalHandler.Health)
	postal.Get("/:cep", postalHandler.Lookup)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, storage := "ok", "ok"
		if deps.Ping != nil {
			if err := deps.Ping(c.UserContext()); err != nil {
				status, storage = "degraded", "error"
			}
		}
		code := fiber.StatusOK
		if status != "ok" {
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{"status": status, "storage": storage, "service": deps.AppName})
	}
}

func apiRootHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    deps.AppName,
			"version": deps.Version,
			"endpoints": fiber.Map{
				"categories":   "/api/categories",
				"products":     "/api/products",
				"sales":        "/api/sales",
				"dashboard":    "/api/dashboard/stats",
				"reports":      "/api/reports",
				"settings":     "/api/settings",
				"postal_codes": "/api/postal-codes/{cep}",
				"docs":         "/docs",
				"metrics":      "/metrics",
			},
		})
	}
}
