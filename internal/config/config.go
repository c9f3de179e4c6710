// Package config provides centralized configuration loaded from environment
// variables. Shared by cmd/api and cmd/dugout.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (per-client, applied by API middleware)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// MLB Stats API
	MLBBaseURL        string
	MLBRequestsPerMin int

	// Season boundary — the last-N game walk never looks earlier than this
	// date in the current year.
	SeasonStartMonth int
	SeasonStartDay   int

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
// The MLB Stats API needs no key, so Load cannot fail; it returns an error
// only to keep the call shape uniform with future validation.
func Load() (*Config, error) {
	return &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8080",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		MLBBaseURL:        envOr("MLB_API_BASE_URL", "https://statsapi.mlb.com"),
		MLBRequestsPerMin: envInt("MLB_REQUESTS_PER_MINUTE", 240),

		SeasonStartMonth: envInt("SEASON_START_MONTH", 3),
		SeasonStartDay:   envInt("SEASON_START_DAY", 1),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SeasonStart returns the season floor for the given year.
func (c *Config) SeasonStart(year int) time.Time {
	return time.Date(year, time.Month(c.SeasonStartMonth), c.SeasonStartDay, 0, 0, 0, 0, time.UTC)
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
