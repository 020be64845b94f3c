// Package handler provides HTTP handlers for all API endpoints.
// Handlers delegate to the series and timeline services, which never fail;
// absence is reported as 404 and malformed input as 400.
package handler

import (
	"net/http"
	"time"

	"github.com/albapepper/lolstats/internal/api/respond"
	"github.com/albapepper/lolstats/internal/cache"
	"github.com/albapepper/lolstats/internal/config"
	"github.com/albapepper/lolstats/internal/model"
	"github.com/albapepper/lolstats/internal/series"
	"github.com/albapepper/lolstats/internal/store"
	"github.com/albapepper/lolstats/internal/timeline"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store    store.Store
	series   *series.Service
	timeline *timeline.Aggregator
	rows     *cache.Rows[model.PlayerMatchStats]
	cfg      *config.Config
}

// New creates a Handler with shared dependencies.
func New(st store.Store, svc *series.Service, agg *timeline.Aggregator, rows *cache.Rows[model.PlayerMatchStats], cfg *config.Config) *Handler {
	return &Handler{
		store:    st,
		series:   svc,
		timeline: agg,
		rows:     rows,
		cfg:      cfg,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and store driver.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "LoL Esports Stats API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"store":   h.cfg.StoreDriver,
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns stats cache statistics.
// @Summary Cache health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.rows.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ClearCache drops every memoized stats row set.
// @Summary Clear stats cache
// @Tags cache
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/cache/clear [post]
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	cleared := h.rows.Len()
	h.timeline.ClearCache()
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":       "cleared",
		"keys_removed": cleared,
	})
}
