package router

import (
	"fmt"
	"net/http"

	"course-market/internal/handler"
	"course-market/internal/metrics"
	"course-market/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// New creates the reference backend router serving the /products resource.
func New(productHandler *handler.ProductHandler, m *metrics.Metrics, logger zerolog.Logger) http.Handler {
	r := base(m, logger)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Post("/", productHandler.Create)
		r.Get("/{id}", productHandler.GetByID)
		r.Put("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Delete)
	})

	return instrument(r, "course-market-api")
}

// NewStorefront creates the storefront router: the public catalogue and the admin console.
func NewStorefront(
	catalogHandler *handler.CatalogHandler,
	adminHandler *handler.AdminHandler,
	m *metrics.Metrics,
	logger zerolog.Logger,
) http.Handler {
	r := base(m, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", catalogHandler.Cards)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/state", adminHandler.State)
			r.Post("/load", adminHandler.Load)
			r.Put("/form", adminHandler.SetForm)
			r.Post("/submit", adminHandler.Submit)
			r.Post("/edit/{id}", adminHandler.Edit)
			r.Post("/cancel", adminHandler.Cancel)
			r.Delete("/products/{id}", adminHandler.Delete)
		})
	})

	return instrument(r, "course-market-storefront")
}

// base applies middleware in order: RequestID -> Recovery -> Logging -> CORS,
// and mounts /health and /metrics.
func base(m *metrics.Metrics, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger, m))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	return r
}

func instrument(r *chi.Mux, operation string) http.Handler {
	return otelhttp.NewHandler(r, operation,
		otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
			return fmt.Sprintf("%s %s", req.Method, req.URL.Path)
		}),
	)
}
