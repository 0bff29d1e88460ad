package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordenes/internal/domain"
	"github.com/vladislavdragonenkov/ordenes/internal/health"
	"github.com/vladislavdragonenkov/ordenes/internal/metrics"
	"github.com/vladislavdragonenkov/ordenes/internal/service/orders"
	"github.com/vladislavdragonenkov/ordenes/internal/service/products"
	"github.com/vladislavdragonenkov/ordenes/internal/storage/memory"
	"github.com/vladislavdragonenkov/ordenes/internal/storage/postgres"
	"github.com/vladislavdragonenkov/ordenes/internal/version"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Orders   *orders.Service
	Products *products.Service
	Health   *health.Handler
	Metrics  *metrics.HTTPMetrics
	Logger   *log.Entry

	store *postgres.Store
}

// NewDependencies создаёт и инициализирует все зависимости приложения
// согласно выбранному драйверу хранилища.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	healthHandler := health.NewHandler(version.String())
	httpMetrics := metrics.NewHTTPMetrics()

	var (
		orderRepo   domain.OrderRepository
		productRepo domain.ProductRepository
		store       *postgres.Store
	)

	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		memStore := memory.NewStore()
		orderRepo = memory.NewOrderRepository(memStore)
		productRepo = memory.NewProductRepository(memStore)
		healthHandler.RegisterChecker("storage", health.NewSimpleChecker("storage", func() error {
			return nil
		}))
		logger.Info("using in-memory storage")
	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres storage requires ORDENES_POSTGRES_DSN")
		}

		pgStore, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}

		if cfg.PostgresAutoMigrate {
			if err := pgStore.EnsureSchema(ctx); err != nil {
				pgStore.Close()
				return nil, fmt.Errorf("ensure schema: %w", err)
			}
		}

		store = pgStore
		orderRepo = postgres.NewOrderRepository(pgStore)
		productRepo = postgres.NewProductRepository(pgStore)
		healthHandler.RegisterChecker("storage", health.NewPingChecker("postgres", 2*time.Second, pgStore.Ping))
		logger.Info("using postgres storage")
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.StorageDriver)
	}

	return &Dependencies{
		Orders:   orders.NewService(orderRepo, productRepo, logger.WithField("component", "order-service")),
		Products: products.NewService(productRepo, logger.WithField("component", "product-service")),
		Health:   healthHandler,
		Metrics:  httpMetrics,
		Logger:   logger,
		store:    store,
	}, nil
}

// Close освобождает ресурсы зависимостей.
func (d *Dependencies) Close() {
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close storage")
		}
	}
}
