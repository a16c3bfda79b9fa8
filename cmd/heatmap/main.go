package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/temperature-heatmap/internal/api/http"
	"github.com/i474232898/temperature-heatmap/internal/chart"
	"github.com/i474232898/temperature-heatmap/internal/config"
	"github.com/i474232898/temperature-heatmap/internal/observability"
	"github.com/i474232898/temperature-heatmap/internal/scheduler"
	"github.com/i474232898/temperature-heatmap/internal/store"
	"github.com/i474232898/temperature-heatmap/internal/temperature"
	"github.com/i474232898/temperature-heatmap/internal/temperature/sources"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logg)

	metrics := observability.NewMetrics()

	// Dataset source: a local file wins over the URL.
	var source temperature.Source
	if cfg.DatasetFile != "" {
		source = sources.NewFileSource(cfg.DatasetFile)
	} else {
		source = sources.NewHTTPSource(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.DatasetURL)
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	service := temperature.NewService(memStore, source, logg, metrics)

	// Scheduler that loads the dataset now and refreshes it periodically.
	sched := scheduler.New(service, cfg.RefreshInterval, cfg.HTTPTimeout, logg)
	if err := sched.Start(); err != nil {
		logg.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "temperature-heatmap",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
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
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "temperature-heatmap",
			"dataset": service.Status().State,
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Options{
		Service:        service,
		Metrics:        metrics,
		Logger:         logg,
		Layout:         chart.DefaultLayout,
		RefreshTimeout: cfg.HTTPTimeout,
	})

	go func() {
		logg.Info("http server listening", "port", cfg.Port, "source", source.Name())
		if err := app.Listen(":" + cfg.Port); err != nil {
			logg.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Error("error during shutdown", "error", err)
	}
}
