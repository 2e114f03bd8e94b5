//go:build integration

package postgres_test

// Pruebas de los repositorios contra un PostgreSQL real (testcontainers).
// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/... -v

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/sales"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ecommerce-dashboard-api/pkg/config"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcPostgres.WithDatabase("ecommerce_test"),
		tcPostgres.WithUsername("ecommerce"),
		tcPostgres.WithPassword("ecommerce"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	url, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 5})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	require.NoError(t, postgres.Migrate(ctx, pool), "las migraciones deben ser idempotentes")
	return pool
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, stock int) (*entity.Category, *entity.Product) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	cat := &entity.Category{ID: uuid.NewString(), Name: "Cat " + uuid.NewString()[:8], Active: true, CreatedAt: now}
	require.NoError(t, postgres.NewCategoryRepository(pool).Create(ctx, cat))
	p := &entity.Product{
		ID: uuid.NewString(), Name: "Producto", Price: decimal.RequireFromString("12.50"), Stock: stock,
		CategoryID: cat.ID, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, p))
	return cat, p
}

func TestIntegration_LedgerYReportes(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	_, p := seedProduct(t, pool, 5)

	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportRepository(pool, time.UTC)
	ledger := sales.NewLedgerUseCase(postgres.NewTxRunner(pool), saleRepo, reportRepo, time.UTC)

	first, err := ledger.CreateSale(ctx, dto.CreateSaleRequest{ProductID: p.ID, Quantity: 5})
	require.NoError(t, err)
	assert.True(t, first.TotalValue.Equal(decimal.RequireFromString("62.5")))

	_, err = ledger.CreateSale(ctx, dto.CreateSaleRequest{ProductID: p.ID, Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	got, err := postgres.NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	totals, err := reportRepo.SalesTotals(ctx, repository.SaleFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, totals.Transactions)
	assert.Equal(t, 5, totals.Units)

	daily, err := reportRepo.DailySales(ctx, repository.SaleFilter{Period: entity.DayRange(time.Now().UTC())})
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, 1, daily[0].Count)

	require.NoError(t, ledger.DeleteSale(ctx, first.ID))
	got, err = postgres.NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
}

func TestIntegration_VentasConcurrentesNoSobrevenden(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	_, p := seedProduct(t, pool, 10)

	ledger := sales.NewLedgerUseCase(postgres.NewTxRunner(pool), postgres.NewSaleRepository(pool),
		postgres.NewReportRepository(pool, time.UTC), time.UTC)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.CreateSale(ctx, dto.CreateSaleRequest{ProductID: p.ID, Quantity: 1}); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	got, err := postgres.NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, ok)
	assert.Equal(t, 0, got.Stock)
}

func TestIntegration_UpdateProductoNoPisaStockYCount(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	cat, p := seedProduct(t, pool, 10)
	repo := postgres.NewProductRepository(pool)

	stale, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AdjustStock(ctx, p.ID, -4))
	stale.Name = "Producto renombrado"
	stale.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, stale))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Producto renombrado", got.Name)
	assert.Equal(t, 6, got.Stock)

	filter := repository.ProductFilter{CategoryID: cat.ID, Limit: 1, Offset: 1}
	list, err := repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, list)
	n, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestIntegration_CategoriaDuplicadaYCascada(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	cat, p := seedProduct(t, pool, 3)
	catRepo := postgres.NewCategoryRepository(pool)

	dup := &entity.Category{ID: uuid.NewString(), Name: cat.Name, Active: true, CreatedAt: time.Now()}
	assert.True(t, errors.Is(catRepo.Create(ctx, dup), domain.ErrDuplicate))

	withCount, err := catRepo.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, withCount.ProductCount)

	require.NoError(t, catRepo.Delete(ctx, cat.ID))
	gone, err := postgres.NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestIntegration_Settings(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewSettingsRepository(pool)

	none, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	s := entity.NewDefaultStoreSettings(time.Now())
	s.City = "Campinas"
	require.NoError(t, repo.Save(ctx, s))
	s.City = "Santos"
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Santos", got.City)
}
