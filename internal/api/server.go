package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/lolstats/internal/api/handler"
	"github.com/albapepper/lolstats/internal/cache"
	"github.com/albapepper/lolstats/internal/config"
	"github.com/albapepper/lolstats/internal/model"
	"github.com/albapepper/lolstats/internal/series"
	"github.com/albapepper/lolstats/internal/store"
	"github.com/albapepper/lolstats/internal/timeline"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(st store.Store, svc *series.Service, agg *timeline.Aggregator, rows *cache.Rows[model.PlayerMatchStats], cfg *config.Config) *chi.Mux {
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
		ExposedHeaders:   []string{"X-Process-Time", "ETag", "Retry-After"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(st, svc, agg, rows, cfg)

	// --- Routes ---

	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		// Series
		r.Get("/series/{id}", h.GetSeriesInfo)
		r.Get("/series/{id}/score", h.GetSeriesScore)
		r.Get("/series/{id}/format", h.GetSeriesFormat)

		// Timeline
		r.Get("/timeline/{entityType}/{entityID}", h.GetTimelineStats)

		// Cache
		r.Post("/cache/clear", h.ClearCache)
	})

	return r
}
