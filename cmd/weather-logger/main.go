package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-logger/internal/api/http"
	"github.com/i474232898/weather-logger/internal/config"
	"github.com/i474232898/weather-logger/internal/csvlog"
	"github.com/i474232898/weather-logger/internal/logger"
	"github.com/i474232898/weather-logger/internal/scheduler"
	"github.com/i474232898/weather-logger/internal/store"
	"github.com/i474232898/weather-logger/internal/weather"
	"github.com/i474232898/weather-logger/internal/weather/providers"
)

func main() {
	// Load configuration (reads .env if present).
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("failed to load config", "error", err)
	}

	log := logger.Get(cfg.LogLevel)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenMeteoProvider(httpClient, providers.OpenMeteoConfig{
		Latitude:    cfg.Latitude,
		Longitude:   cfg.Longitude,
		Timezone:    cfg.Timezone,
		ForecastURL: cfg.ForecastURL,
		ArchiveURL:  cfg.ArchiveURL,
	})

	// Single-snapshot store holding the most recent successful fetch.
	memStore := store.NewLatestStore()

	// CSV appender. The parent directory must exist before the first append.
	if dir := filepath.Dir(cfg.CSVPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Warnw("could not create csv directory", "dir", dir, "error", err)
		}
	}
	appender := csvlog.NewAppender(cfg.CSVPath)

	// Core service orchestrating provider, store and csv log.
	service := weather.NewService(provider, memStore, appender, log)

	// Scheduler that periodically fetches and persists data.
	sched := scheduler.New(cfg.FetchInterval, service, log)
	if err := sched.Start(); err != nil {
		log.Fatalw("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-logger",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-logger",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, sched)

	go func() {
		log.Infow("http server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorw("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("error during shutdown", "error", err)
	}
}
