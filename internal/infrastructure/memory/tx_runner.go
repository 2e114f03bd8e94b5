package memory

import (
	"context"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones y, si fn falla, deshace las filas que fn modificó (rollback).
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repositorios atados a la transacción y deshace sus cambios si devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	undo := newUndoLog()
	productRepo := &ProductRepo{s: r.store, undo: undo}
	saleRepo := &SaleRepo{s: r.store, undo: undo}
	if err := fn(productRepo, saleRepo); err != nil {
		r.store.rollback(undo)
		return err
	}
	return nil
}
