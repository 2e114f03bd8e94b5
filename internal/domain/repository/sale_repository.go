package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
)

// SaleFilter filtros de ventas. Period usa fechas de calendario inclusivas.
type SaleFilter struct {
	ProductID  string
	CategoryID string
	Period     entity.DateRange
	Limit      int
	Offset     int
}

// SaleRepository define el puerto de persistencia para Sale.
// No toca el stock: el ajuste lo hace el ledger de ventas dentro de la misma transacción.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id string) error
	// List ventas ordenadas de la más reciente a la más antigua.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	ListRecentByProduct(ctx context.Context, productID string, limit int) ([]*entity.Sale, error)
	SumQuantityByProduct(ctx context.Context, productID string) (int, error)
}
