// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORAGE_DRIVER=memory (demos locales) y en las pruebas de los casos de uso.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
)

// Store datos compartidos por todos los repositorios en memoria.
// mu protege los mapas; txMu serializa las transacciones de TxRunner con las demás escrituras.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	loc        *time.Location
	categories map[string]entity.Category
	products   map[string]entity.Product
	sales      map[string]entity.Sale
	settings   *entity.StoreSettings
}

// NewStore construye un almacén vacío. loc define los días de calendario de los reportes.
func NewStore(loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{
		loc:        loc,
		categories: make(map[string]entity.Category),
		products:   make(map[string]entity.Product),
		sales:      make(map[string]entity.Sale),
	}
}

// serialize toma txMu para una escritura fuera de transacción, de modo que no se intercale
// con una transacción en curso ni la pise su rollback. Los repositorios de TxRunner ya lo tienen.
func (s *Store) serialize(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

// undoLog guarda el valor previo de cada fila que toca una transacción, la primera vez que la toca.
// Un puntero nil indica que la fila no existía.
type undoLog struct {
	products map[string]*entity.Product
	sales    map[string]*entity.Sale
}

func newUndoLog() *undoLog {
	return &undoLog{
		products: make(map[string]*entity.Product),
		sales:    make(map[string]*entity.Sale),
	}
}

// product registra la fila del producto antes de modificarla. Requiere mu tomado.
func (u *undoLog) product(s *Store, id string) {
	if u == nil {
		return
	}
	if _, seen := u.products[id]; seen {
		return
	}
	if p, ok := s.products[id]; ok {
		u.products[id] = &p
		return
	}
	u.products[id] = nil
}

// sale registra la fila de la venta antes de modificarla. Requiere mu tomado.
func (u *undoLog) sale(s *Store, id string) {
	if u == nil {
		return
	}
	if _, seen := u.sales[id]; seen {
		return
	}
	if v, ok := s.sales[id]; ok {
		u.sales[id] = &v
		return
	}
	u.sales[id] = nil
}

// rollback devuelve a su valor previo solo las filas registradas.
func (s *Store) rollback(u *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range u.products {
		if p == nil {
			delete(s.products, id)
			continue
		}
		s.products[id] = *p
	}
	for id, v := range u.sales {
		if v == nil {
			delete(s.sales, id)
			continue
		}
		s.sales[id] = *v
	}
}

// productView copia del producto con los campos de solo lectura resueltos. Requiere mu tomado.
func (s *Store) productView(p entity.Product) *entity.Product {
	if c, ok := s.categories[p.CategoryID]; ok {
		p.CategoryName = c.Name
	}
	return &p
}

// saleView copia de la venta con los datos del producto. Requiere mu tomado.
func (s *Store) saleView(v entity.Sale) *entity.Sale {
	if p, ok := s.products[v.ProductID]; ok {
		v.ProductName = p.Name
		v.ProductStock = p.Stock
		if c, ok := s.categories[p.CategoryID]; ok {
			v.CategoryName = c.Name
		}
	}
	return &v
}

// categoryView copia de la categoría con el conteo de productos activos. Requiere mu tomado.
func (s *Store) categoryView(c entity.Category) *entity.Category {
	c.ProductCount = 0
	for _, p := range s.products {
		if p.CategoryID == c.ID && p.Active {
			c.ProductCount++
		}
	}
	return &c
}

// sortedSales ventas que cumplen match, de la más reciente a la más antigua. Requiere mu tomado.
func (s *Store) sortedSales(match func(entity.Sale) bool) []entity.Sale {
	out := make([]entity.Sale, 0, len(s.sales))
	for _, v := range s.sales {
		if match(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SoldAt.Equal(out[j].SoldAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].SoldAt.After(out[j].SoldAt)
	})
	return out
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
