package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
)

// recentSalesLimit ventas recientes incluidas en el detalle de un producto.
const recentSalesLimit = 5

// ProductUseCase casos de uso CRUD para productos. El stock se descuenta vía ventas;
// Update permite fijarlo para reponer inventario, dentro de una transacción con la fila bloqueada.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	saleRepo     repository.SaleRepository
	txRunner     repository.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	saleRepo repository.SaleRepository,
	txRunner repository.TxRunner,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, saleRepo: saleRepo, txRunner: txRunner}
}

// Create crea un producto en una categoría existente y activa. Stock inicia en el valor dado (>= 0).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: el precio debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}
	category, err := uc.activeCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price.Round(2),
		Stock:        in.Stock,
		CategoryID:   category.ID,
		Active:       in.Active == nil || *in.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
		CategoryName: category.Name,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetByID obtiene el detalle de un producto: total vendido y las ventas más recientes.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	totalSold, err := uc.saleRepo.SumQuantityByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	recent, err := uc.saleRepo.ListRecentByProduct(ctx, id, recentSalesLimit)
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetailResponse{
		ProductResponse: *dto.ToProductResponse(product),
		TotalSold:       totalSold,
		RecentSales:     dto.ToSaleResponses(recent),
	}, nil
}

// Update actualiza un producto (parcial). Sin Stock en la entrada el stock no se toca;
// con Stock se ajusta por la diferencia contra la fila bloqueada (reposición explícita).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if in.Price != nil && !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: el precio debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}

	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository) error {
		var err error
		product, err = productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		if in.Name != nil {
			product.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.Price != nil {
			product.Price = in.Price.Round(2)
		}
		if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
			category, err := uc.activeCategory(ctx, *in.CategoryID)
			if err != nil {
				return err
			}
			product.CategoryID = category.ID
			product.CategoryName = category.Name
		}
		if in.Active != nil {
			product.Active = *in.Active
		}
		product.UpdatedAt = time.Now()
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		if in.Stock != nil && *in.Stock != product.Stock {
			if err := productRepo.AdjustStock(ctx, id, *in.Stock-product.Stock); err != nil {
				return err
			}
			product.Stock = *in.Stock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// List lista productos filtrados, del más reciente al más antiguo.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	filter := repository.ProductFilter{
		Active:     in.Active,
		CategoryID: in.CategoryID,
		LowStock:   in.LowStock,
		Search:     in.Search,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Count: count},
	}, nil
}

// ListLowStock productos con stock por debajo del umbral, del menor al mayor stock.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, categoryID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto y sus ventas.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return product, nil
}

func (uc *ProductUseCase) activeCategory(ctx context.Context, id string) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoría %s no existe", domain.ErrInvalidInput, id)
	}
	if !category.Active {
		return nil, fmt.Errorf("%w: categoría %s inactiva", domain.ErrInvalidInput, category.Name)
	}
	return category, nil
}
