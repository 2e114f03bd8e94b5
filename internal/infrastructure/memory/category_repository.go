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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	s *Store
}

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{s: s}
}

func (r *CategoryRepo) nameTaken(name, exceptID string) bool {
	for _, c := range r.s.categories {
		if c.ID != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; ok || r.nameTaken(category.Name, "") {
		return fmt.Errorf("%w: categoría %q", domain.ErrDuplicate, category.Name)
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return r.s.categoryView(c), nil
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if strings.EqualFold(c.Name, name) {
			return r.s.categoryView(c), nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.nameTaken(category.Name, category.ID) {
		return fmt.Errorf("%w: categoría %q", domain.ErrDuplicate, category.Name)
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepo) List(_ context.Context, active *bool) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		if active != nil && c.Active != *active {
			continue
		}
		out = append(out, r.s.categoryView(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete borra la categoría, sus productos y las ventas de estos.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	defer r.s.serialize(false)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for pid, p := range r.s.products {
		if p.CategoryID == id {
			r.s.deleteProduct(pid, nil)
		}
	}
	delete(r.s.categories, id)
	return nil
}
