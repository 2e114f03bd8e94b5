package repository

import "context"

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo (incluida la restauración de stock).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo ProductRepository,
		saleRepo SaleRepository,
	) error) error
}
