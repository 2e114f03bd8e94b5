package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos. Los campos vacíos no filtran.
type ProductFilter struct {
	Active     *bool
	CategoryID string
	LowStock   bool   // solo productos con stock por debajo del umbral
	Search     string // nombre o descripción, sin distinguir mayúsculas
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update persiste los datos descriptivos. No escribe stock: eso es de AdjustStock.
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock aplica stock += delta. No valida reglas de negocio; eso es del llamador.
	AdjustStock(ctx context.Context, id string, delta int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Count cuenta los productos del filtro sin aplicar Limit/Offset.
	Count(ctx context.Context, filter ProductFilter) (int, error)
	// ListLowStock productos con stock bajo, ordenados por stock ascendente.
	ListLowStock(ctx context.Context, categoryID string) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
