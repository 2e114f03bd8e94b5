package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Borrar una categoría borra sus productos (y las ventas de estos).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, active *bool) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
}
