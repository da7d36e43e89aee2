package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stitchwear/storefront/internal/service"
	"github.com/stitchwear/storefront/pkg/health"
	"github.com/stitchwear/storefront/pkg/middleware"
)

// RouterConfig carries the transport-level settings the router needs.
type RouterConfig struct {
	CORS              middleware.CORSConfig
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with all catalog service routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("catalog"))
	r.Use(middleware.PrometheusMetrics("catalog"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	// Catalog API endpoints
	catalogHandler := NewCatalogHandler(catalogService, logger)

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", catalogHandler.ListCatalog)
		r.Get("/{idOrSlug}", catalogHandler.GetProduct)
		r.Get("/{idOrSlug}/availability", catalogHandler.GetAvailability)
	})

	// Cart handoff endpoints
	cartHandler := NewCartHandler(catalogService, logger)

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/items", cartHandler.AddItem)
	})

	// Category API endpoints
	categoryHandler := NewCategoryHandler(catalogService, logger)

	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// The navigation list changes rarely; let clients cache it briefly.
		r.With(middleware.CacheControl(300)).Get("/", categoryHandler.ListCategories)
		r.Post("/cache/invalidate", categoryHandler.InvalidateCache)
	})

	return r
}
