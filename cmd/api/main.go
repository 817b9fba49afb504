// Command api is the ListingRadar dashboard API server. It also runs the
// background tickers: signal collection, scoring, alert checks, the daily
// digest, and retention cleanup.
//
// Usage:
//
//	radar-api
//	API_PORT=8080 radar-api

// @title ListingRadar API
// @version 1.0.0
// @description Commerce momentum radar: tracked products, signal trends, momentum alerts, and the daily digest.
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

	"github.com/listingradar/radar/internal/alert"
	"github.com/listingradar/radar/internal/api"
	"github.com/listingradar/radar/internal/cache"
	"github.com/listingradar/radar/internal/collector"
	"github.com/listingradar/radar/internal/config"
	"github.com/listingradar/radar/internal/db"
	"github.com/listingradar/radar/internal/maintenance"
	"github.com/listingradar/radar/internal/scoring"

	_ "github.com/listingradar/radar/docs" // swagger docs
)

func main() {
	logLevel := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Debug {
		logLevel.Set(slog.LevelDebug)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Alert delivery (nil sender means alerts are logged, not delivered)
	sender := alert.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
	if sender == nil {
		logger.Info("Telegram delivery disabled (no TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID)")
	}
	var gateSender alert.Sender
	if sender != nil {
		gateSender = sender
	}
	gate := alert.NewGate(pool.Pool, gateSender, cfg, logger)

	// Scoring engine
	engine := scoring.NewEngine(pool.Pool, cfg.Weights, logger)

	// Signal sources. Real marketplace integrations are not wired yet, so
	// turning mock collection off disables the collect ticker entirely.
	var sources []collector.Source
	if cfg.CollectorsMock {
		sources = collector.DefaultSources()
	} else {
		logger.Info("Collectors disabled (COLLECTORS_MOCK=false)")
	}

	// Background tickers: collect, score, alert, digest, cleanup
	go maintenance.Start(ctx, maintenance.Deps{
		Q:       pool.Pool,
		Engine:  engine,
		Gate:    gate,
		Sender:  gateSender,
		Sources: sources,
		Cfg:     cfg,
		Logger:  logger,
	})

	// Create router
	router := api.NewRouter(pool.Pool, appCache, cfg, gate)

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
		logger.Info("Starting ListingRadar API",
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
