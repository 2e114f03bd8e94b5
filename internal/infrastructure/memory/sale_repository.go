package memory

import (
	"context"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación en memoria de SaleRepository.
// undo no es nil cuando el repositorio pertenece a una transacción de TxRunner.
type SaleRepo struct {
	s    *Store
	undo *undoLog
}

// NewSaleRepository construye el repositorio.
func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{s: s}
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.s.serialize(r.undo != nil)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.products[sale.ProductID]; !ok {
		return domain.ErrNotFound
	}
	r.undo.sale(r.s, sale.ID)
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return r.s.saleView(v), nil
}

// Update persiste producto, cantidad, precios y notas. SoldAt se conserva.
func (r *SaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	defer r.s.serialize(r.undo != nil)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.sales[sale.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.products[sale.ProductID]; !ok {
		return domain.ErrNotFound
	}
	r.undo.sale(r.s, sale.ID)
	v := *sale
	v.SoldAt = prev.SoldAt
	r.s.sales[sale.ID] = v
	return nil
}

func (r *SaleRepo) Delete(_ context.Context, id string) error {
	defer r.s.serialize(r.undo != nil)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[id]; !ok {
		return domain.ErrNotFound
	}
	r.undo.sale(r.s, id)
	delete(r.s.sales, id)
	return nil
}

func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := paginate(r.s.sortedSales(r.s.saleMatcher(f)), f.Limit, f.Offset)
	out := make([]*entity.Sale, 0, len(list))
	for _, v := range list {
		out = append(out, r.s.saleView(v))
	}
	return out, nil
}

func (r *SaleRepo) ListRecentByProduct(_ context.Context, productID string, limit int) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := paginate(r.s.sortedSales(func(v entity.Sale) bool { return v.ProductID == productID }), limit, 0)
	out := make([]*entity.Sale, 0, len(list))
	for _, v := range list {
		out = append(out, r.s.saleView(v))
	}
	return out, nil
}

func (r *SaleRepo) SumQuantityByProduct(_ context.Context, productID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := 0
	for _, v := range r.s.sales {
		if v.ProductID == productID {
			total += v.Quantity
		}
	}
	return total, nil
}

// saleMatcher traduce el filtro a un predicado. Requiere mu tomado.
func (s *Store) saleMatcher(f repository.SaleFilter) func(entity.Sale) bool {
	return func(v entity.Sale) bool {
		if f.ProductID != "" && v.ProductID != f.ProductID {
			return false
		}
		if f.CategoryID != "" {
			p, ok := s.products[v.ProductID]
			if !ok || p.CategoryID != f.CategoryID {
				return false
			}
		}
		return f.Period.Contains(v.SoldAt)
	}
}
