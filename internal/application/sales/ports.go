package sales

// Operaciones del ledger informadas al observador.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Observer recibe el resultado de cada operación del ledger (métricas).
type Observer interface {
	ObserveSaleOp(op string, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveSaleOp(string, error) {}
