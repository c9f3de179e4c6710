package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/dugout-labs/dugout-data/internal/api/handler"
	"github.com/dugout-labs/dugout-data/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(h *handler.Handler, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "Link"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Schedule
		r.Get("/schedule/today", h.GetTodaySchedule)
		r.Get("/schedule/team/{teamID}", h.GetTeamSchedule)
		r.Get("/schedule/next/{teamID}", h.GetNextGame)

		// Teams
		r.Get("/teams", h.GetTeams)
		r.Get("/teams/{teamID}", h.GetTeam)
		r.Get("/standings", h.GetStandings)

		// Team betting summaries
		r.Get("/stats/team/{teamID}/{numGames}", h.GetTeamStats)

		// Game comparison
		r.Get("/comparison/{gamePk}", h.GetComparison)

		// Players
		r.Get("/player/search/{name}", h.SearchPlayers)
		r.Get("/player/stats/{playerID}/{season}", h.GetPlayerStats)
		r.Get("/player/recent-stats/{playerID}/{numGames}", h.GetPlayerRecentStats)
		r.Get("/player/betting-stats/{playerID}/{numGames}", h.GetPlayerBettingStats)
	})

	return r
}
