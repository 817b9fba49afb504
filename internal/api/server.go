package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/listingradar/radar/internal/alert"
	"github.com/listingradar/radar/internal/api/handler"
	"github.com/listingradar/radar/internal/cache"
	"github.com/listingradar/radar/internal/config"
	"github.com/listingradar/radar/internal/db"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(q db.Querier, appCache *cache.Cache, cfg *config.Config, gate *alert.Gate) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(q, appCache, cfg, gate)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Products
		r.Get("/products", h.GetProducts)
		r.Get("/categories", h.GetCategories)

		// Signals
		r.Get("/trends", h.GetTrends)

		// Alerts
		r.Get("/alerts", h.GetAlerts)
		r.Post("/test-alert", h.PostTestAlert)

		// Dashboard
		r.Get("/stats", h.GetStats)
		r.Get("/digest", h.GetDigest)
	})

	return r
}
