// Package analytics contiene los casos de uso de lectura: estadísticas y gráficos del
// dashboard y los reportes en PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
)

const (
	DefaultChartDays     = 30
	DefaultChartProducts = 10
	maxChartDays         = 366
	maxChartProducts     = 100
)

// DashboardUseCase genera estadísticas y series para los gráficos del dashboard.
//
// Fuente de datos: ReportRepository (consultas read-only).
// Los días de calendario se calculan en la zona horaria configurada.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	loc        *time.Location
	now        func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{reportRepo: reportRepo, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (pruebas).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// Stats construye el DashboardStatsDTO.
//
// Cinco llamadas en paralelo:
//  1. ProductCounts()           → total, activos, stock bajo
//  2. SalesTotals(hoy)          → ingresos y ventas de hoy
//  3. SalesTotals(mes)          → ingresos y ventas del mes
//  4. TopProducts(histórico, 1) → producto más vendido
//  5. SalesByCategory(histórico) → categoría más vendida (por unidades)
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	today := uc.now().In(uc.loc)

	type countsResult struct {
		counts repository.ProductCountsResult
		err    error
	}
	type totalsResult struct {
		totals repository.SalesTotalsResult
		err    error
	}
	type topResult struct {
		top []repository.TopProductResult
		err error
	}
	type categoriesResult struct {
		categories []repository.CategorySalesResult
		err        error
	}

	countsCh := make(chan countsResult, 1)
	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	topCh := make(chan topResult, 1)
	catCh := make(chan categoriesResult, 1)

	go func() {
		c, err := uc.reportRepo.ProductCounts(ctx)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		t, err := uc.reportRepo.SalesTotals(ctx, repository.SaleFilter{Period: entity.DayRange(today)})
		todayCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.reportRepo.SalesTotals(ctx, repository.SaleFilter{Period: entity.MonthToDate(today)})
		monthCh <- totalsResult{t, err}
	}()
	go func() {
		top, err := uc.reportRepo.TopProducts(ctx, repository.SaleFilter{}, 1)
		topCh <- topResult{top, err}
	}()
	go func() {
		cats, err := uc.reportRepo.SalesByCategory(ctx, repository.SaleFilter{})
		catCh <- categoriesResult{cats, err}
	}()

	counts := <-countsCh
	todayTotals := <-todayCh
	monthTotals := <-monthCh
	top := <-topCh
	cats := <-catCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de productos: %w", counts.err)
	}
	if todayTotals.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", todayTotals.err)
	}
	if monthTotals.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", monthTotals.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: producto más vendido: %w", top.err)
	}
	if cats.err != nil {
		return nil, fmt.Errorf("dashboard: ventas por categoría: %w", cats.err)
	}

	bestProduct := dto.NotAvailable
	if len(top.top) > 0 {
		bestProduct = top.top[0].ProductName
	}

	return &dto.DashboardStatsDTO{
		TotalProducts:       counts.counts.Total,
		ActiveProducts:      counts.counts.Active,
		LowStockProducts:    counts.counts.LowStock,
		TodayRevenue:        todayTotals.totals.Revenue.Round(2),
		TodayCount:          todayTotals.totals.Transactions,
		MonthRevenue:        monthTotals.totals.Revenue.Round(2),
		MonthCount:          monthTotals.totals.Transactions,
		BestSellingProduct:  bestProduct,
		BestSellingCategory: bestCategoryByUnits(cats.categories),
	}, nil
}

// SalesChart ventas por día de los últimos `days` días (solo días con ventas).
func (uc *DashboardUseCase) SalesChart(ctx context.Context, days int) ([]dto.SalesChartPointDTO, error) {
	if days <= 0 {
		days = DefaultChartDays
	}
	if days > maxChartDays {
		days = maxChartDays
	}
	period := entity.LastDays(uc.now().In(uc.loc), days)
	rows, err := uc.reportRepo.DailySales(ctx, repository.SaleFilter{Period: period})
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas diarias: %w", err)
	}
	points := make([]dto.SalesChartPointDTO, 0, len(rows))
	for _, r := range rows {
		points = append(points, dto.SalesChartPointDTO{
			Date:    r.Day.In(uc.loc).Format("2006-01-02"),
			Revenue: r.Revenue.Round(2),
			Count:   r.Count,
		})
	}
	return points, nil
}

// ProductsChart productos más vendidos (histórico) por unidades.
func (uc *DashboardUseCase) ProductsChart(ctx context.Context, limit int) ([]dto.ProductChartItemDTO, error) {
	if limit <= 0 {
		limit = DefaultChartProducts
	}
	if limit > maxChartProducts {
		limit = maxChartProducts
	}
	rows, err := uc.reportRepo.TopProducts(ctx, repository.SaleFilter{}, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: productos más vendidos: %w", err)
	}
	items := make([]dto.ProductChartItemDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ProductChartItemDTO{
			ProductID:    r.ProductID,
			Name:         r.ProductName,
			Category:     r.CategoryName,
			QuantitySold: r.Quantity,
			Revenue:      r.Revenue.Round(2),
			CurrentStock: r.Stock,
		})
	}
	return items, nil
}

// CategoriesChart ventas históricas agrupadas por categoría, por ingreso descendente.
func (uc *DashboardUseCase) CategoriesChart(ctx context.Context) ([]dto.CategoryChartItemDTO, error) {
	rows, err := uc.reportRepo.SalesByCategory(ctx, repository.SaleFilter{})
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas por categoría: %w", err)
	}
	items := make([]dto.CategoryChartItemDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.CategoryChartItemDTO{
			CategoryID:   r.CategoryID,
			Category:     r.CategoryName,
			ProductCount: r.ProductCount,
			Revenue:      r.Revenue.Round(2),
			QuantitySold: r.Quantity,
		})
	}
	return items, nil
}

// bestCategoryByUnits la primera categoría con más unidades vendidas (las filas llegan por ingreso).
func bestCategoryByUnits(rows []repository.CategorySalesResult) string {
	best := dto.NotAvailable
	units := 0
	for _, r := range rows {
		if r.Quantity > units {
			best, units = r.CategoryName, r.Quantity
		}
	}
	return best
}
