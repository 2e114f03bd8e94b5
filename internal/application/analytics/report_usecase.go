package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/ports"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
)

const (
	reportTopProducts = 10
	reportMaxSales    = 1000 // líneas de venta en el PDF
)

// Report es un documento generado listo para descargar.
type Report struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ReportUseCase reúne los datos de cada reporte y delega el render en ports.ReportRenderer.
type ReportUseCase struct {
	reportRepo   repository.ReportRepository
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	settingsRepo repository.SettingsRepository
	renderer     ports.ReportRenderer
	loc          *time.Location
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	settingsRepo repository.SettingsRepository,
	renderer ports.ReportRenderer,
	loc *time.Location,
) *ReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportUseCase{
		reportRepo:   reportRepo,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		settingsRepo: settingsRepo,
		renderer:     renderer,
		loc:          loc,
		now:          time.Now,
	}
}

// Available lista los reportes disponibles y sus parámetros.
func (uc *ReportUseCase) Available() []dto.ReportInfoDTO {
	return []dto.ReportInfoDTO{
		{
			ID:          "sales",
			Name:        "Reporte de ventas",
			Description: "Ventas del período con totales, productos más vendidos y resumen por categoría",
			URL:         "/api/reports/sales/pdf",
			Format:      "pdf",
			Params: []dto.ReportParamDTO{
				{Name: "date_from", Type: "date", Description: "Fecha inicial YYYY-MM-DD (inclusiva)"},
				{Name: "date_to", Type: "date", Description: "Fecha final YYYY-MM-DD (inclusiva)"},
				{Name: "category_id", Type: "uuid", Description: "Filtrar por categoría"},
				{Name: "product_id", Type: "uuid", Description: "Filtrar por producto"},
			},
		},
		{
			ID:          "stock",
			Name:        "Reporte de stock",
			Description: "Productos con precio, stock y estado, más contadores de resumen",
			URL:         "/api/reports/stock/pdf",
			Format:      "pdf",
			Params: []dto.ReportParamDTO{
				{Name: "only_low", Type: "bool", Description: "Solo productos con stock bajo"},
				{Name: "category_id", Type: "uuid", Description: "Filtrar por categoría"},
			},
		},
	}
}

// SalesReport genera el PDF de ventas del período y filtros indicados.
func (uc *ReportUseCase) SalesReport(ctx context.Context, in dto.SalesReportRequest) (*Report, error) {
	period, err := entity.NewDateRange(in.DateFrom, in.DateTo, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	filters, err := uc.filterLabels(ctx, in.CategoryID, in.ProductID)
	if err != nil {
		return nil, err
	}
	filter := repository.SaleFilter{
		ProductID:  in.ProductID,
		CategoryID: in.CategoryID,
		Period:     period,
		Limit:      reportMaxSales,
	}

	data := &ports.SalesReportData{Period: period, Filters: filters, GeneratedAt: uc.now().In(uc.loc)}
	if data.Store, err = uc.store(ctx); err != nil {
		return nil, err
	}
	if data.Totals, err = uc.reportRepo.SalesTotals(ctx, filter); err != nil {
		return nil, fmt.Errorf("reporte de ventas: totales: %w", err)
	}
	if data.Sales, err = uc.saleRepo.List(ctx, filter); err != nil {
		return nil, fmt.Errorf("reporte de ventas: ventas: %w", err)
	}
	if data.TopProducts, err = uc.reportRepo.TopProducts(ctx, filter, reportTopProducts); err != nil {
		return nil, fmt.Errorf("reporte de ventas: productos: %w", err)
	}
	if data.Categories, err = uc.reportRepo.SalesByCategory(ctx, filter); err != nil {
		return nil, fmt.Errorf("reporte de ventas: categorías: %w", err)
	}

	content, err := uc.renderer.RenderSalesReport(data)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: render: %w", err)
	}
	return &Report{
		Filename:    fmt.Sprintf("relatorio_vendas_%s.pdf", data.GeneratedAt.Format("20060102_150405")),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// StockReport genera el PDF de stock. onlyLow limita a productos con stock bajo.
func (uc *ReportUseCase) StockReport(ctx context.Context, in dto.StockReportRequest) (*Report, error) {
	filters, err := uc.filterLabels(ctx, in.CategoryID, "")
	if err != nil {
		return nil, err
	}
	if in.OnlyLow {
		filters = append(filters, "Solo stock bajo")
	}
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{CategoryID: in.CategoryID, LowStock: in.OnlyLow})
	if err != nil {
		return nil, fmt.Errorf("reporte de stock: productos: %w", err)
	}
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Stock == products[j].Stock {
			return products[i].Name < products[j].Name
		}
		return products[i].Stock < products[j].Stock
	})

	data := &ports.StockReportData{
		OnlyLow:     in.OnlyLow,
		Filters:     filters,
		GeneratedAt: uc.now().In(uc.loc),
		Products:    products,
		Summary:     SummarizeStock(products),
	}
	if data.Store, err = uc.store(ctx); err != nil {
		return nil, err
	}
	content, err := uc.renderer.RenderStockReport(data)
	if err != nil {
		return nil, fmt.Errorf("reporte de stock: render: %w", err)
	}
	return &Report{
		Filename:    fmt.Sprintf("relatorio_estoque_%s.pdf", data.GeneratedAt.Format("20060102_150405")),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// SummarizeStock cuenta productos por estado de stock y valoriza el inventario.
func SummarizeStock(products []*entity.Product) ports.StockSummary {
	s := ports.StockSummary{InventoryValue: decimal.Zero}
	for _, p := range products {
		s.Products++
		s.Units += p.Stock
		s.InventoryValue = s.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
		switch p.StockStatus() {
		case entity.StockStatusOutOfStock:
			s.OutOfStock++
		case entity.StockStatusLow:
			s.Low++
		default:
			s.OK++
		}
	}
	s.InventoryValue = s.InventoryValue.Round(2)
	return s
}

func (uc *ReportUseCase) store(ctx context.Context) (*entity.StoreSettings, error) {
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: configuración de la tienda: %w", err)
	}
	if settings == nil {
		settings = entity.NewDefaultStoreSettings(uc.now())
	}
	return settings, nil
}

// filterLabels resuelve los nombres de categoría y producto; IDs inexistentes son ErrNotFound.
func (uc *ReportUseCase) filterLabels(ctx context.Context, categoryID, productID string) ([]string, error) {
	var labels []string
	if categoryID != "" {
		c, err := uc.categoryRepo.GetByID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, categoryID)
		}
		labels = append(labels, "Categoría: "+c.Name)
	}
	if productID != "" {
		p, err := uc.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
		}
		labels = append(labels, "Producto: "+p.Name)
	}
	return labels, nil
}
