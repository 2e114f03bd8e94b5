package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
// undo no es nil cuando el repositorio pertenece a una transacción de TxRunner.
type ProductRepo struct {
	s    *Store
	undo *undoLog
}

// NewProductRepository construye el repositorio.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	defer r.s.serialize(r.undo != nil)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.categories[product.CategoryID]; !ok {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, product.CategoryID)
	}
	r.undo.product(r.s, product.ID)
	r.s.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return r.s.productView(p), nil
}

// GetForUpdate equivale a GetByID: el bloqueo lo da TxRunner, que serializa las transacciones.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Update persiste los datos descriptivos; conserva el stock almacenado.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	defer r.s.serialize(r.undo != nil)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.categories[product.CategoryID]; !ok {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, product.CategoryID)
	}
	r.undo.product(r.s, product.ID)
	p := *product
	p.Stock = prev.Stock
	r.s.products[product.ID] = p
	return nil
}

// AdjustStock aplica stock += delta. Rechaza dejar el stock negativo (igual que el CHECK de la tabla).
func (r *ProductRepo) AdjustStock(_ context.Context, id string, delta int) error {
	defer r.s.serialize(r.undo != nil)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if p.Stock+delta < 0 {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, p.Name)
	}
	r.undo.product(r.s, id)
	p.Stock += delta
	r.s.products[id] = p
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	match := productMatcher(f)
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if match(p) {
			out = append(out, r.s.productView(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, f.Limit, f.Offset), nil
}

// Count cuenta los productos que cumplen el filtro, sin paginar.
func (r *ProductRepo) Count(_ context.Context, f repository.ProductFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	match := productMatcher(f)
	n := 0
	for _, p := range r.s.products {
		if match(p) {
			n++
		}
	}
	return n, nil
}

func productMatcher(f repository.ProductFilter) func(entity.Product) bool {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	return func(p entity.Product) bool {
		if f.Active != nil && p.Active != *f.Active {
			return false
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			return false
		}
		if f.LowStock && !p.LowStock() {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			return false
		}
		return true
	}
}

func (r *ProductRepo) ListLowStock(_ context.Context, categoryID string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if !p.LowStock() || (categoryID != "" && p.CategoryID != categoryID) {
			continue
		}
		out = append(out, r.s.productView(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stock == out[j].Stock {
			return out[i].Name < out[j].Name
		}
		return out[i].Stock < out[j].Stock
	})
	return out, nil
}

// Delete borra el producto y sus ventas.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.s.serialize(r.undo != nil)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	r.s.deleteProduct(id, r.undo)
	return nil
}

// deleteProduct borra el producto y sus ventas. Requiere mu tomado; undo puede ser nil.
func (s *Store) deleteProduct(id string, undo *undoLog) {
	for sid, v := range s.sales {
		if v.ProductID == id {
			undo.sale(s, sid)
			delete(s.sales, sid)
		}
	}
	undo.product(s, id)
	delete(s.products, id)
}
