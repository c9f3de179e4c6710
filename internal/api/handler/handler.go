// Package handler provides HTTP handlers for all API endpoints.
// Handlers parse path/query parameters and delegate to the domain services;
// the services degrade internally, so most endpoints always return 200 with
// any per-section errors embedded in the payload.
package handler

import (
	"net/http"
	"time"

	"github.com/dugout-labs/dugout-data/internal/api/respond"
	"github.com/dugout-labs/dugout-data/internal/cache"
	"github.com/dugout-labs/dugout-data/internal/comparison"
	"github.com/dugout-labs/dugout-data/internal/config"
	"github.com/dugout-labs/dugout-data/internal/game"
	"github.com/dugout-labs/dugout-data/internal/player"
	"github.com/dugout-labs/dugout-data/internal/provider/mlb"
	"github.com/dugout-labs/dugout-data/internal/schedule"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	cfg      *config.Config
	memo     *cache.Memo
	provider *mlb.Client
	resolver *schedule.Resolver
	games    *game.Service
	players  *player.Service
	compare  *comparison.Service
}

// New creates a Handler with shared dependencies.
func New(cfg *config.Config, memo *cache.Memo, provider *mlb.Client, resolver *schedule.Resolver, games *game.Service, players *player.Service, compare *comparison.Service) *Handler {
	return &Handler{
		cfg:      cfg,
		memo:     memo,
		provider: provider,
		resolver: resolver,
		games:    games,
		players:  players,
		compare:  compare,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and docs location.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Dugout Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
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

// HealthCheckCache returns memo table statistics.
// @Summary Cache health check
// @Description Returns in-memory memo table statistics (entries, hits, misses).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.memo.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
