// Command api is the LoL esports stats API server.
//
// Usage:
//
//	lolstats-api
//	STORE_DRIVER=sqlite SQLITE_PATH=lol.db lolstats-api

// @title LoL Esports Stats API
// @version 1.0.0
// @description Series validation, scoring and timeline checkpoint averages for League of Legends esports matches.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
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

	"github.com/albapepper/lolstats/internal/api"
	"github.com/albapepper/lolstats/internal/cache"
	"github.com/albapepper/lolstats/internal/config"
	"github.com/albapepper/lolstats/internal/db"
	"github.com/albapepper/lolstats/internal/listener"
	"github.com/albapepper/lolstats/internal/model"
	"github.com/albapepper/lolstats/internal/series"
	"github.com/albapepper/lolstats/internal/timeline"

	_ "github.com/albapepper/lolstats/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to the store
	logger.Info("Opening store...", "driver", cfg.StoreDriver)
	st, closeStore, err := db.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	logger.Info("Store ready", "driver", cfg.StoreDriver)

	// Initialize cache and services
	rows := cache.NewRows[model.PlayerMatchStats](cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	svc := series.NewService(st, series.Thresholds{
		MinGames: cfg.SeriesMinGames,
		MaxGames: cfg.SeriesMaxGames,
	}, logger)
	agg := timeline.NewAggregator(st, rows, logger)

	// Drop cached rows whenever the ingestion job reports a refresh
	if cfg.ListenerEnabled && cfg.StoreDriver == config.DriverPostgres {
		go listener.Start(ctx, cfg.DatabaseURL, config.RefreshChannel, func(ev listener.RefreshEvent) {
			dropped := rows.Len()
			agg.ClearCache()
			logger.Info("Stats cache cleared", "source", ev.Source, "keys_removed", dropped)
		}, logger)
	} else {
		logger.Info("Refresh listener disabled")
	}

	// Create router
	router := api.NewRouter(st, svc, agg, rows, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting LoL Esports Stats API",
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
