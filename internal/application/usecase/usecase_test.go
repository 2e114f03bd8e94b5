package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/sales"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/memory"
)

type catalog struct {
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	ledger     *sales.LedgerUseCase
}

func newCatalog() *catalog {
	store := memory.NewStore(time.UTC)
	saleRepo := memory.NewSaleRepository(store)
	tx := memory.NewTxRunner(store)
	return &catalog{
		categories: usecase.NewCategoryUseCase(memory.NewCategoryRepository(store)),
		products: usecase.NewProductUseCase(
			memory.NewProductRepository(store),
			memory.NewCategoryRepository(store),
			saleRepo,
			tx,
		),
		ledger: sales.NewLedgerUseCase(tx, saleRepo, memory.NewReportRepository(store), time.UTC),
	}
}

func boolPtr(v bool) *bool { return &v }

func (c *catalog) category(t *testing.T, name string) *dto.CategoryResponse {
	t.Helper()
	cat, err := c.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return cat
}

func (c *catalog) product(t *testing.T, categoryID, name string, stock int) *dto.ProductResponse {
	t.Helper()
	p, err := c.products.Create(context.Background(), dto.CreateProductRequest{
		Name:       name,
		Price:      decimal.RequireFromString("10.50"),
		Stock:      stock,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_NombreDuplicado(t *testing.T) {
	c := newCatalog()
	c.category(t, "Electrónica")

	_, err := c.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: "electrónica"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestCategory_ConteoYFiltroActivo(t *testing.T) {
	c := newCatalog()
	cat := c.category(t, "Hogar")
	c.product(t, cat.ID, "Lámpara", 3)
	c.product(t, cat.ID, "Mesa", 3)

	inactive, err := c.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: "Archivo", Active: boolPtr(false)})
	require.NoError(t, err)

	got, err := c.categories.GetByID(context.Background(), cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ProductCount)

	active, err := c.categories.List(context.Background(), boolPtr(true))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Hogar", active[0].Name)

	all, err := c.categories.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, inactive.Name, all[0].Name, "ordenadas por nombre")
}

func TestCategory_DeleteEnCascada(t *testing.T) {
	c := newCatalog()
	cat := c.category(t, "Juguetes")
	p := c.product(t, cat.ID, "Pelota", 5)
	_, err := c.ledger.CreateSale(context.Background(), dto.CreateSaleRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, c.categories.Delete(context.Background(), cat.ID))

	_, err = c.products.GetByID(context.Background(), p.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	list, err := c.ledger.ListSales(context.Background(), dto.SaleFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CreateValidaciones(t *testing.T) {
	c := newCatalog()
	cat := c.category(t, "Deportes")
	off, err := c.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: "Inactiva", Active: boolPtr(false)})
	require.NoError(t, err)

	cases := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"precio cero", dto.CreateProductRequest{Name: "X", Price: decimal.Zero, CategoryID: cat.ID}},
		{"stock negativo", dto.CreateProductRequest{Name: "X", Price: decimal.NewFromInt(1), Stock: -1, CategoryID: cat.ID}},
		{"categoría inexistente", dto.CreateProductRequest{Name: "X", Price: decimal.NewFromInt(1), CategoryID: "00000000-0000-0000-0000-000000000000"}},
		{"categoría inactiva", dto.CreateProductRequest{Name: "X", Price: decimal.NewFromInt(1), CategoryID: off.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.products.Create(context.Background(), tc.in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "obtenido %v", err)
		})
	}
}

func TestProduct_DetalleConVentas(t *testing.T) {
	c := newCatalog()
	cat := c.category(t, "Libros")
	p := c.product(t, cat.ID, "Go en la práctica", 20)
	for i := 0; i < 7; i++ {
		_, err := c.ledger.CreateSale(context.Background(), dto.CreateSaleRequest{ProductID: p.ID, Quantity: 2})
		require.NoError(t, err)
	}

	detail, err := c.products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)

	assert.Equal(t, 14, detail.TotalSold)
	assert.Len(t, detail.RecentSales, 5)
	assert.Equal(t, 6, detail.Stock)
	assert.Equal(t, entity.StockStatusLow, detail.StockStatus)
	assert.Equal(t, "Libros", detail.CategoryName)
}

func TestProduct_ReposicionYFiltros(t *testing.T) {
	c := newCatalog()
	cat := c.category(t, "Oficina")
	low := c.product(t, cat.ID, "Grapadora", 0)
	c.product(t, cat.ID, "Carpeta azul", 50)

	stock := 30
	updated, err := c.products.Update(context.Background(), low.ID, dto.UpdateProductRequest{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.Stock)
	assert.Equal(t, entity.StockStatusOK, updated.StockStatus)

	list, err := c.products.List(context.Background(), dto.ProductFilterRequest{Search: "AZUL"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Carpeta azul", list.Items[0].Name)

	negative := -1
	_, err = c.products.Update(context.Background(), low.ID, dto.UpdateProductRequest{Stock: &negative})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestProduct_RenombrarNoTocaStock(t *testing.T) {
	c := newCatalog()
	cat := c.category(t, "Papelería")
	p := c.product(t, cat.ID, "Cuaderno", 10)
	_, err := c.ledger.CreateSale(context.Background(), dto.CreateSaleRequest{ProductID: p.ID, Quantity: 4})
	require.NoError(t, err)

	name := "Cuaderno A4"
	updated, err := c.products.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Cuaderno A4", updated.Name)
	assert.Equal(t, 6, updated.Stock)
	detail, err := c.products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, detail.Stock)
	assert.Equal(t, 4, detail.TotalSold)
}

func TestProduct_UpdateConcurrenteConVentasConservaLedger(t *testing.T) {
	c := newCatalog()
	cat := c.category(t, "Bebidas")
	p := c.product(t, cat.ID, "Agua", 50)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := c.ledger.CreateSale(context.Background(), dto.CreateSaleRequest{ProductID: p.ID, Quantity: 1})
			assert.NoError(t, err)
		}()
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("Agua %d", i)
			_, err := c.products.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: &name})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	detail, err := c.products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, detail.TotalSold)
	assert.Equal(t, 50-detail.TotalSold, detail.Stock)
}

func TestProduct_UpdateInvalidoNoAplicaCambios(t *testing.T) {
	c := newCatalog()
	cat := c.category(t, "Jardín")
	p := c.product(t, cat.ID, "Maceta", 5)

	name := "Maceta grande"
	otra := "00000000-0000-0000-0000-000000000000"
	_, err := c.products.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: &name, CategoryID: &otra})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	detail, err := c.products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maceta", detail.Name)
	assert.Equal(t, 5, detail.Stock)
}

func TestProduct_ListCountEsTotalDelFiltro(t *testing.T) {
	c := newCatalog()
	cat := c.category(t, "Cocina")
	c.product(t, cat.ID, "Olla", 5)
	c.product(t, cat.ID, "Sartén", 5)
	c.product(t, cat.ID, "Cuchillo", 5)

	list, err := c.products.List(context.Background(), dto.ProductFilterRequest{PageRequest: dto.PageRequest{Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 3, list.Page.Count)

	list, err = c.products.List(context.Background(), dto.ProductFilterRequest{Search: "olla"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Count)
}

func TestProduct_ListLowStockOrdenado(t *testing.T) {
	c := newCatalog()
	cat := c.category(t, "Limpieza")
	c.product(t, cat.ID, "Jabón", 9)
	c.product(t, cat.ID, "Esponja", 0)
	c.product(t, cat.ID, "Escoba", 10)

	items, err := c.products.ListLowStock(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Esponja", items[0].Name)
	assert.Equal(t, entity.StockStatusOutOfStock, items[0].StockStatus)
	assert.Equal(t, entity.StockStatusLow, items[1].StockStatus)
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuración de la tienda
// ──────────────────────────────────────────────────────────────────────────────

func TestSettings_GetCreaPorDefecto(t *testing.T) {
	uc := usecase.NewSettingsUseCase(memory.NewSettingsRepository(memory.NewStore(time.UTC)))

	got, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCompanyName, got.CompanyName)
}

func TestSettings_UpdateNormaliza(t *testing.T) {
	uc := usecase.NewSettingsUseCase(memory.NewSettingsRepository(memory.NewStore(time.UTC)))

	got, err := uc.Update(context.Background(), dto.UpdateSettingsRequest{
		CompanyName: "Loja Central",
		TaxID:       "11222333000181",
		PostalCode:  "01310100",
		Street:      "Avenida Paulista",
		City:        "São Paulo",
		State:       "sp",
	})
	require.NoError(t, err)
	assert.Equal(t, "01310-100", got.PostalCode)
	assert.Equal(t, "11.222.333/0001-81", got.TaxID)
	assert.Equal(t, "SP", got.State)

	again, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Loja Central", again.CompanyName)
}

func TestSettings_UpdateErrores(t *testing.T) {
	uc := usecase.NewSettingsUseCase(memory.NewSettingsRepository(memory.NewStore(time.UTC)))
	base := dto.UpdateSettingsRequest{
		CompanyName: "Loja", PostalCode: "01310-100", Street: "Rua A", City: "Santos", State: "SP",
	}

	badCEP := base
	badCEP.PostalCode = "1234"
	_, err := uc.Update(context.Background(), badCEP)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	badCNPJ := base
	badCNPJ.TaxID = "123"
	_, err = uc.Update(context.Background(), badCNPJ)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	missing := base
	missing.City = " "
	_, err = uc.Update(context.Background(), missing)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
