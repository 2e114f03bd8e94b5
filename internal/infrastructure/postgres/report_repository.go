package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para dashboard y reportes.
type ReportRepo struct {
	q   Querier
	loc *time.Location
}

// NewReportRepository construye el adaptador. loc define el día de calendario en DailySales.
func NewReportRepository(q Querier, loc *time.Location) *ReportRepo {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportRepo{q: q, loc: loc}
}

const salesFrom = `
	FROM sales s
	JOIN products   p ON p.id = s.product_id
	JOIN categories c ON c.id = p.category_id`

// SalesTotals ingresos, cantidad de ventas y unidades. COALESCE devuelve cero sin ventas.
func (r *ReportRepo) SalesTotals(ctx context.Context, f repository.SaleFilter) (repository.SalesTotalsResult, error) {
	w := saleWhere(f)
	query := `SELECT COALESCE(SUM(s.total_value), 0), COUNT(s.id), COALESCE(SUM(s.quantity), 0)` + salesFrom + w.sql()
	var res repository.SalesTotalsResult
	if err := r.q.QueryRow(ctx, query, w.args...).Scan(&res.Revenue, &res.Transactions, &res.Units); err != nil {
		return res, fmt.Errorf("reports.SalesTotals: %w", err)
	}
	return res, nil
}

// TopProducts productos por unidades vendidas, con su stock actual.
func (r *ReportRepo) TopProducts(ctx context.Context, f repository.SaleFilter, limit int) ([]repository.TopProductResult, error) {
	w := saleWhere(f)
	query := `
	SELECT p.id, p.name, c.name, SUM(s.quantity) AS qty, SUM(s.total_value) AS revenue, p.stock` +
		salesFrom + w.sql() + `
	GROUP BY p.id, p.name, c.name, p.stock
	ORDER BY qty DESC, p.name` + w.limitOffset(limit, 0)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("reports.TopProducts: %w", err)
	}
	defer rows.Close()
	var out []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.CategoryName, &t.Quantity, &t.Revenue, &t.Stock); err != nil {
			return nil, fmt.Errorf("reports.TopProducts scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SalesByCategory productos distintos, ingreso y unidades por categoría, por ingreso descendente.
func (r *ReportRepo) SalesByCategory(ctx context.Context, f repository.SaleFilter) ([]repository.CategorySalesResult, error) {
	w := saleWhere(f)
	query := `
	SELECT c.id, c.name, COUNT(DISTINCT p.id), SUM(s.total_value) AS revenue, SUM(s.quantity)` +
		salesFrom + w.sql() + `
	GROUP BY c.id, c.name
	ORDER BY revenue DESC, c.name`

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesByCategory: %w", err)
	}
	defer rows.Close()
	var out []repository.CategorySalesResult
	for rows.Next() {
		var c repository.CategorySalesResult
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.ProductCount, &c.Revenue, &c.Quantity); err != nil {
			return nil, fmt.Errorf("reports.SalesByCategory scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DailySales ingreso y cantidad de ventas por día de calendario en la zona horaria configurada.
func (r *ReportRepo) DailySales(ctx context.Context, f repository.SaleFilter) ([]repository.DailySalesResult, error) {
	w := saleWhere(f)
	tz := w.arg(r.loc.String())
	query := `
	SELECT TO_CHAR((s.sold_at AT TIME ZONE ` + tz + `)::date, 'YYYY-MM-DD') AS day,
	       SUM(s.total_value), COUNT(s.id)` +
		salesFrom + w.sql() + `
	GROUP BY day
	ORDER BY day`

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("reports.DailySales: %w", err)
	}
	defer rows.Close()
	var out []repository.DailySalesResult
	for rows.Next() {
		var (
			day string
			d   repository.DailySalesResult
		)
		if err := rows.Scan(&day, &d.Revenue, &d.Count); err != nil {
			return nil, fmt.Errorf("reports.DailySales scan: %w", err)
		}
		rng, err := entity.NewDateRange(day, day, r.loc)
		if err != nil {
			return nil, fmt.Errorf("reports.DailySales día %q: %w", day, err)
		}
		d.Day = rng.Start
		out = append(out, d)
	}
	return out, rows.Err()
}

// ProductCounts total de productos, activos y activos con stock bajo.
func (r *ReportRepo) ProductCounts(ctx context.Context) (repository.ProductCountsResult, error) {
	query := `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE active),
	       COUNT(*) FILTER (WHERE active AND stock < $1)
	FROM products`
	var res repository.ProductCountsResult
	if err := r.q.QueryRow(ctx, query, entity.LowStockThreshold).Scan(&res.Total, &res.Active, &res.LowStock); err != nil {
		return res, fmt.Errorf("reports.ProductCounts: %w", err)
	}
	return res, nil
}
