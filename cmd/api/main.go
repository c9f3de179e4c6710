// Command api is the Dugout Data API server.
//
// Usage:
//
//	dugout-api
//	API_PORT=8080 dugout-api

// @title Dugout Data API
// @version 1.0.0
// @description MLB betting analytics API serving schedules, team NRFI and first-five-innings summaries, game comparisons, and player stats derived from the MLB Stats API.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Dugout Labs
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/dugout-labs/dugout-data/internal/api"
	"github.com/dugout-labs/dugout-data/internal/api/handler"
	"github.com/dugout-labs/dugout-data/internal/cache"
	"github.com/dugout-labs/dugout-data/internal/comparison"
	"github.com/dugout-labs/dugout-data/internal/config"
	"github.com/dugout-labs/dugout-data/internal/game"
	"github.com/dugout-labs/dugout-data/internal/player"
	"github.com/dugout-labs/dugout-data/internal/provider/mlb"
	"github.com/dugout-labs/dugout-data/internal/schedule"

	_ "github.com/dugout-labs/dugout-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Initialize cache
	memo := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Wire up the provider and domain services
	client := mlb.NewClient(cfg.MLBBaseURL, cfg.MLBRequestsPerMin, logger)
	resolver := schedule.NewResolver(client, memo, cfg.SeasonStart(time.Now().Year()), nil, logger)
	fetcher := game.NewFetcher(client, memo, logger)
	games := game.NewService(resolver, fetcher, logger)
	players := player.NewService(client, fetcher, memo, nil, logger)
	compare := comparison.NewService(resolver, games, players, client, nil, logger)

	h := handler.New(cfg, memo, client, resolver, games, players, compare)
	router := api.NewRouter(h, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Dugout Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
