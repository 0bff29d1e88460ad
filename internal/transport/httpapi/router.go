// Пакет httpapi собирает HTTP-поверхность API: маршруты, обработчики
// и сквозные middleware (request id, логирование, метрики, CORS).
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordenes/internal/health"
	"github.com/vladislavdragonenkov/ordenes/internal/metrics"
	"github.com/vladislavdragonenkov/ordenes/internal/service/orders"
	"github.com/vladislavdragonenkov/ordenes/internal/service/products"
)

const requestTimeout = 30 * time.Second

// RouterConfig — зависимости HTTP-маршрутизатора.
type RouterConfig struct {
	Orders   *orders.Service
	Products *products.Service
	Health   *health.Handler
	Metrics  *metrics.HTTPMetrics
	Logger   *log.Entry
}

// NewRouter собирает chi-маршрутизатор со всеми эндпоинтами API.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New().WithField("component", "http")
	}

	orderHandler := NewOrderHandler(cfg.Orders, cfg.Metrics, logger.WithField("handler", "orders"))
	productHandler := NewProductHandler(cfg.Products, cfg.Metrics, logger.WithField("handler", "products"))

	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(chimiddleware.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(metricsMiddleware(cfg.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		MaxAge:         300,
	}))

	if cfg.Health != nil {
		r.Get("/healthz", cfg.Health.ServeHTTP)
		r.Get("/livez", health.LivenessHandler)
		r.Get("/readyz", cfg.Health.ReadinessHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.List)
			r.Post("/", orderHandler.Create)
			r.Get("/{id}", orderHandler.Get)
			r.Put("/{id}", orderHandler.Update)
			r.Delete("/{id}", orderHandler.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Post("/", productHandler.Create)
			r.Get("/{id}", productHandler.Get)
			r.Put("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
			r.Get("/{id}/in-use", productHandler.InUse)
		})
	})

	return r
}
