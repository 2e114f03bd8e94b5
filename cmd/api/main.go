package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/ecommerce-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/ports"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/sales"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/cache"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/memory"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/viacep"
	httpRouter "github.com/jhoicas/ecommerce-dashboard-api/internal/interfaces/http"
	"github.com/jhoicas/ecommerce-dashboard-api/pkg/config"
	"github.com/jhoicas/ecommerce-dashboard-api/pkg/logger"
)

// version se sobreescribe en el build: -ldflags "-X main.version=..."
var version = "dev"

const swaggerFile = "./docs/swagger.json"

// storage repositorios del driver configurado.
type storage struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	sales      repository.SaleRepository
	settings   repository.SettingsRepository
	reports    repository.ReportRepository
	tx         repository.TxRunner
	ping       func(ctx context.Context) error
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", version).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, loc)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.App.StorageDriver).Msg("inicializar almacenamiento")
	}
	defer store.close()

	m := metrics.New(cfg.Metrics.Prefix)

	// CEP: ViaCEP, con caché Redis si REDIS_URL está definido.
	var postalLookup ports.PostalCodeLookup = viacep.NewClient(cfg.Postal.BaseURL, cfg.Postal.Timeout)
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, consultas de CEP sin caché")
		} else {
			defer rdb.Close()
			postalLookup = cache.NewPostalCache(postalLookup, rdb, cfg.Postal.CacheTTL, m)
			log.Info().Dur("ttl", cfg.Postal.CacheTTL).Msg("caché de CEP en Redis activa")
		}
	}

	categoryUC := usecase.NewCategoryUseCase(store.categories)
	productUC := usecase.NewProductUseCase(store.products, store.categories, store.sales, store.tx)
	settingsUC := usecase.NewSettingsUseCase(store.settings)
	postalUC := usecase.NewPostalUseCase(postalLookup)
	ledger := sales.NewLedgerUseCase(store.tx, store.sales, store.reports, loc, sales.WithObserver(m))
	dashboardUC := appanalytics.NewDashboardUseCase(store.reports, loc)
	reportUC := appanalytics.NewReportUseCase(
		store.reports, store.sales, store.products, store.categories, store.settings,
		infrapdf.NewMarotoReportGenerator(), loc,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog())
	app.Use(m.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "E-commerce Dashboard API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger no disponible")
	}

	app.Get("/metrics", m.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		Version:     version,
		CategoryUC:  categoryUC,
		ProductUC:   productUC,
		Ledger:      ledger,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		SettingsUC:  settingsUC,
		PostalUC:    postalUC,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		Ping:        store.ping,
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: las rutas de escritura quedan abiertas")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, loc *time.Location) (*storage, error) {
	switch cfg.App.StorageDriver {
	case config.StorageMemory:
		s := memory.NewStore(loc)
		return &storage{
			categories: memory.NewCategoryRepository(s),
			products:   memory.NewProductRepository(s),
			sales:      memory.NewSaleRepository(s),
			settings:   memory.NewSettingsRepository(s),
			reports:    memory.NewReportRepository(s),
			tx:         memory.NewTxRunner(s),
			close:      func() {},
		}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &storage{
			categories: postgres.NewCategoryRepository(pool),
			products:   postgres.NewProductRepository(pool),
			sales:      postgres.NewSaleRepository(pool),
			settings:   postgres.NewSettingsRepository(pool),
			reports:    postgres.NewReportRepository(pool, loc),
			tx:         postgres.NewTxRunner(pool),
			ping:       pool.Ping,
			close:      pool.Close,
		}, nil
	}
	return nil, errors.New("driver de almacenamiento desconocido: " + cfg.App.StorageDriver)
}
