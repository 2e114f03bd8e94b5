package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación en memoria de las consultas de reportes.
type ReportRepo struct {
	s *Store
}

// NewReportRepository construye el repositorio.
func NewReportRepository(s *Store) *ReportRepo {
	return &ReportRepo{s: s}
}

func (r *ReportRepo) SalesTotals(_ context.Context, f repository.SaleFilter) (repository.SalesTotalsResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := repository.SalesTotalsResult{Revenue: decimal.Zero}
	match := r.s.saleMatcher(f)
	for _, v := range r.s.sales {
		if !match(v) {
			continue
		}
		res.Revenue = res.Revenue.Add(v.TotalValue)
		res.Transactions++
		res.Units += v.Quantity
	}
	return res, nil
}

func (r *ReportRepo) TopProducts(_ context.Context, f repository.SaleFilter, limit int) ([]repository.TopProductResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byProduct := make(map[string]*repository.TopProductResult)
	match := r.s.saleMatcher(f)
	for _, v := range r.s.sales {
		if !match(v) {
			continue
		}
		row, ok := byProduct[v.ProductID]
		if !ok {
			view := r.s.saleView(v)
			row = &repository.TopProductResult{
				ProductID:    v.ProductID,
				ProductName:  view.ProductName,
				CategoryName: view.CategoryName,
				Stock:        view.ProductStock,
				Revenue:      decimal.Zero,
			}
			byProduct[v.ProductID] = row
		}
		row.Quantity += v.Quantity
		row.Revenue = row.Revenue.Add(v.TotalValue)
	}
	out := make([]repository.TopProductResult, 0, len(byProduct))
	for _, row := range byProduct {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity == out[j].Quantity {
			return out[i].ProductName < out[j].ProductName
		}
		return out[i].Quantity > out[j].Quantity
	})
	return paginate(out, limit, 0), nil
}

func (r *ReportRepo) SalesByCategory(_ context.Context, f repository.SaleFilter) ([]repository.CategorySalesResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byCategory := make(map[string]*repository.CategorySalesResult)
	products := make(map[string]map[string]struct{})
	match := r.s.saleMatcher(f)
	for _, v := range r.s.sales {
		if !match(v) {
			continue
		}
		p, ok := r.s.products[v.ProductID]
		if !ok {
			continue
		}
		row, ok := byCategory[p.CategoryID]
		if !ok {
			row = &repository.CategorySalesResult{
				CategoryID:   p.CategoryID,
				CategoryName: r.s.categories[p.CategoryID].Name,
				Revenue:      decimal.Zero,
			}
			byCategory[p.CategoryID] = row
			products[p.CategoryID] = make(map[string]struct{})
		}
		row.Revenue = row.Revenue.Add(v.TotalValue)
		row.Quantity += v.Quantity
		products[p.CategoryID][p.ID] = struct{}{}
	}
	out := make([]repository.CategorySalesResult, 0, len(byCategory))
	for id, row := range byCategory {
		row.ProductCount = len(products[id])
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].CategoryName < out[j].CategoryName
		}
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	return out, nil
}

func (r *ReportRepo) DailySales(_ context.Context, f repository.SaleFilter) ([]repository.DailySalesResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byDay := make(map[string]*repository.DailySalesResult)
	match := r.s.saleMatcher(f)
	for _, v := range r.s.sales {
		if !match(v) {
			continue
		}
		day := entity.DayRange(v.SoldAt.In(r.s.loc))
		row, ok := byDay[day.FromLabel()]
		if !ok {
			row = &repository.DailySalesResult{Day: day.Start, Revenue: decimal.Zero}
			byDay[day.FromLabel()] = row
		}
		row.Revenue = row.Revenue.Add(v.TotalValue)
		row.Count++
	}
	out := make([]repository.DailySalesResult, 0, len(byDay))
	for _, row := range byDay {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (r *ReportRepo) ProductCounts(_ context.Context) (repository.ProductCountsResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var res repository.ProductCountsResult
	for _, p := range r.s.products {
		res.Total++
		if p.Active {
			res.Active++
			if p.LowStock() {
				res.LowStock++
			}
		}
	}
	return res, nil
}
