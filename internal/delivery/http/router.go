package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Pesokrava/bugstore/internal/config"
	"github.com/Pesokrava/bugstore/internal/delivery/http/handler"
	"github.com/Pesokrava/bugstore/internal/delivery/http/middleware"
	"github.com/Pesokrava/bugstore/internal/delivery/http/response"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
	"github.com/Pesokrava/bugstore/internal/pkg/metrics"
)

const requestTimeout = 30 * time.Second

// Handlers groups the HTTP handlers mounted under /api/v1
type Handlers struct {
	Customer *handler.CustomerHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Report   *handler.ReportHandler
}

// Router holds HTTP handlers and router configuration
type Router struct {
	handlers Handlers
	metrics  *metrics.Collector
	logger   *logger.Logger
	cfg      *config.Config
}

// NewRouter creates a new HTTP router. collector may be nil.
func NewRouter(handlers Handlers, collector *metrics.Collector, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		handlers: handlers,
		metrics:  collector,
		logger:   log,
		cfg:      cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	if rt.metrics != nil {
		r.Use(middleware.Metrics(rt.metrics))
	}
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	if rt.metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	h := rt.handlers
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", h.Customer.Create)
			r.Get("/", h.Customer.List)
			r.Get("/{id}", h.Customer.GetByID)
			r.Put("/{id}", h.Customer.Update)
			r.Delete("/{id}", h.Customer.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", h.Product.Create)
			r.Get("/", h.Product.List)
			r.Get("/{id}", h.Product.GetByID)
			r.Put("/{id}", h.Product.Update)
			r.Patch("/{id}", h.Product.UpdatePrice)
			r.Delete("/{id}", h.Product.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Order.Create)
			r.Get("/", h.Order.List)
			r.Get("/customer/{customerId}", h.Order.ListByCustomer)
			r.Get("/{id}", h.Order.GetByID)
			r.Delete("/{id}", h.Order.Delete)
			r.Post("/{id}/line", h.Order.AddLine)
			r.Delete("/{id}/line", h.Order.RemoveLine)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/period", h.Report.RevenueByPeriod)
			r.Get("/best", h.Report.BestCustomers)
			r.Get("/{customerId}", h.Report.RevenueByCustomer)
		})
	})

	return r
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
