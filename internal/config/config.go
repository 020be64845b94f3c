// Package config provides centralized configuration loaded from environment
// variables. Shared by cmd/api and cmd/lolstats.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// RefreshChannel is the Postgres NOTIFY channel the ingestion job signals
// after loading a batch.
const RefreshChannel = "stats_refreshed"

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Store
	StoreDriver    string
	DatabaseURL    string
	SQLitePath     string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool
	LogLevel    slog.Level

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Stats cache and its NOTIFY-driven invalidation
	CacheEnabled    bool
	ListenerEnabled bool

	// Series classification bounds
	SeriesMinGames int
	SeriesMaxGames int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	driver := strings.ToLower(envOr("STORE_DRIVER", DriverPostgres))
	dbURL := envOr("DATABASE_URL", envOr("SUPABASE_DB_URL", ""))

	switch driver {
	case DriverPostgres:
		if dbURL == "" {
			return nil, fmt.Errorf("DATABASE_URL or SUPABASE_DB_URL must be set for the postgres driver")
		}
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", driver, DriverPostgres, DriverSQLite)
	}

	cfg := &Config{
		StoreDriver:    driver,
		DatabaseURL:    dbURL,
		SQLitePath:     envOr("SQLITE_PATH", "lolstats.db"),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),
		LogLevel:    envLevel("LOG_LEVEL", slog.LevelInfo),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled:    envBool("CACHE_ENABLED", true),
		ListenerEnabled: envBool("LISTENER_ENABLED", driver == DriverPostgres),

		SeriesMinGames: envInt("SERIES_MIN_GAMES", 2),
		SeriesMaxGames: envInt("SERIES_MAX_GAMES", 7),
	}

	if cfg.SeriesMinGames < 1 || cfg.SeriesMaxGames < cfg.SeriesMinGames {
		return nil, fmt.Errorf("invalid series bounds: SERIES_MIN_GAMES=%d SERIES_MAX_GAMES=%d",
			cfg.SeriesMinGames, cfg.SeriesMaxGames)
	}
	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
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

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			return lvl
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
