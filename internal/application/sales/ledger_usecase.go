// Package sales implementa el ciclo de vida de las ventas y su efecto sobre el stock.
// Invariante: para cada producto, stock = stock inicial + reposiciones − Σ cantidades de ventas vigentes.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/inventory"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
)

// LedgerUseCase registra, edita y elimina ventas de forma transaccional con bloqueo de fila
// del producto (SELECT FOR UPDATE) y Commit/Rollback.
type LedgerUseCase struct {
	txRunner   repository.TxRunner
	saleRepo   repository.SaleRepository
	reportRepo repository.ReportRepository
	loc        *time.Location
	observer   Observer
	now        func() time.Time
}

// Option configura el caso de uso.
type Option func(*LedgerUseCase)

// WithObserver registra un observador de operaciones (métricas).
func WithObserver(o Observer) Option {
	return func(uc *LedgerUseCase) {
		if o != nil {
			uc.observer = o
		}
	}
}

// WithClock reemplaza el reloj usado para SoldAt.
func WithClock(now func() time.Time) Option {
	return func(uc *LedgerUseCase) { uc.now = now }
}

// NewLedgerUseCase construye el caso de uso. loc es la zona horaria de las fechas de calendario.
func NewLedgerUseCase(
	txRunner repository.TxRunner,
	saleRepo repository.SaleRepository,
	reportRepo repository.ReportRepository,
	loc *time.Location,
	opts ...Option,
) *LedgerUseCase {
	if loc == nil {
		loc = time.UTC
	}
	uc := &LedgerUseCase{
		txRunner:   txRunner,
		saleRepo:   saleRepo,
		reportRepo: reportRepo,
		loc:        loc,
		observer:   noopObserver{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CreateSale bloquea el producto, verifica que esté activo y con stock suficiente,
// descuenta la cantidad y guarda la venta con SoldAt = ahora.
func (uc *LedgerUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.createSale(ctx, in)
	uc.observer.ObserveSaleOp(OpCreate, err)
	if err != nil {
		return nil, err
	}
	return dto.ToSaleResponse(sale), nil
}

func (uc *LedgerUseCase) createSale(ctx context.Context, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor o igual a 1", domain.ErrInvalidInput)
	}
	if in.UnitPrice != nil {
		if err := inventory.CheckUnitPrice(*in.UnitPrice); err != nil {
			return nil, err
		}
	}

	sale := &entity.Sale{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
		SoldAt:    uc.now(),
	}
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		product, err := reserve(ctx, productRepo, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		sale.UnitPrice = product.Price
		if in.UnitPrice != nil {
			sale.UnitPrice = in.UnitPrice.Round(2)
		}
		sale.TotalValue = inventory.SaleTotal(sale.UnitPrice, sale.Quantity)
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		fillProduct(sale, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// UpdateSale restaura el stock de la venta original, aplica los nuevos valores y vuelve a
// validar y descontar sobre el producto (posiblemente otro). Si algo falla no cambia nada.
// SoldAt no se modifica.
func (uc *LedgerUseCase) UpdateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.updateSale(ctx, id, in)
	uc.observer.ObserveSaleOp(OpUpdate, err)
	if err != nil {
		return nil, err
	}
	return dto.ToSaleResponse(sale), nil
}

func (uc *LedgerUseCase) updateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*entity.Sale, error) {
	if in.Quantity != nil && *in.Quantity < 1 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor o igual a 1", domain.ErrInvalidInput)
	}
	if in.UnitPrice != nil {
		if err := inventory.CheckUnitPrice(*in.UnitPrice); err != nil {
			return nil, err
		}
	}
	if in.ProductID != nil && *in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id no puede ser vacío", domain.ErrInvalidInput)
	}

	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		var err error
		sale, err = saleRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
		}

		// Restaura el stock del producto original, sin tope.
		if err := productRepo.AdjustStock(ctx, sale.ProductID, sale.Quantity); err != nil {
			return err
		}

		if in.ProductID != nil {
			sale.ProductID = *in.ProductID
		}
		if in.Quantity != nil {
			sale.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			sale.UnitPrice = in.UnitPrice.Round(2)
		}
		if in.Notes != nil {
			sale.Notes = *in.Notes
		}

		product, err := reserve(ctx, productRepo, sale.ProductID, sale.Quantity)
		if err != nil {
			return err
		}
		sale.TotalValue = inventory.SaleTotal(sale.UnitPrice, sale.Quantity)
		if err := saleRepo.Update(ctx, sale); err != nil {
			return err
		}
		fillProduct(sale, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// DeleteSale devuelve la cantidad vendida al stock del producto (sin condiciones) y elimina la venta.
func (uc *LedgerUseCase) DeleteSale(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		sale, err := saleRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
		}
		if err := productRepo.AdjustStock(ctx, sale.ProductID, sale.Quantity); err != nil {
			return err
		}
		return saleRepo.Delete(ctx, id)
	})
	uc.observer.ObserveSaleOp(OpDelete, err)
	return err
}

// GetSale obtiene una venta por ID.
func (uc *LedgerUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	return dto.ToSaleResponse(sale), nil
}

// ListSales lista ventas filtradas, de la más reciente a la más antigua, con los totales
// de valor y cantidad de todo el filtro (no solo de la página).
func (uc *LedgerUseCase) ListSales(ctx context.Context, in dto.SaleFilterRequest) (*dto.SaleListResponse, error) {
	period, err := entity.NewDateRange(in.DateFrom, in.DateTo, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	in.DefaultPage()
	filter := repository.SaleFilter{
		ProductID:  in.ProductID,
		CategoryID: in.CategoryID,
		Period:     period,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	list, err := uc.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	totals, err := uc.reportRepo.SalesTotals(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.SaleListResponse{
		Items:         dto.ToSaleResponses(list),
		Page:          dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Count: totals.Transactions},
		TotalValue:    totals.Revenue,
		TotalQuantity: totals.Units,
	}, nil
}

// reserve bloquea el producto, valida disponibilidad y descuenta quantity del stock.
func reserve(ctx context.Context, productRepo repository.ProductRepository, productID string, quantity int) (*entity.Product, error) {
	product, err := productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	if err := inventory.CheckAvailability(product, quantity); err != nil {
		return nil, err
	}
	if err := productRepo.AdjustStock(ctx, productID, -quantity); err != nil {
		return nil, err
	}
	product.Stock -= quantity
	return product, nil
}

func fillProduct(sale *entity.Sale, p *entity.Product) {
	sale.ProductName = p.Name
	sale.CategoryName = p.CategoryName
	sale.ProductStock = p.Stock
}
