package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/i474232898/flight-emissions/internal/api/http"
	"github.com/i474232898/flight-emissions/internal/config"
	"github.com/i474232898/flight-emissions/internal/emissions"
	"github.com/i474232898/flight-emissions/internal/emissions/providers"
	"github.com/i474232898/flight-emissions/internal/scheduler"
	"github.com/i474232898/flight-emissions/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.TravelAPIKey == "" {
		log.Printf("ERROR: TRAVEL_API_KEY is not set; future flight estimates will fail")
	}

	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	past := providers.NewPastFlightsProvider(httpClient, cfg.PastAPIBaseURL, cfg.PastAPIToken)
	future := providers.NewFutureFlightsProvider(httpClient, cfg.TravelAPIKey, cfg.TravelAPIBaseURL)

	// Probe statuses only; emissions results are never stored.
	probeStore := store.NewMemoryStore(cfg.ProbeMaxHistory, cfg.ProbeMaxAge)

	service := emissions.NewService(past, future, probeStore, past, future)

	sched := scheduler.New(cfg.ProbeInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "flight-emissions",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout + 5*time.Second,
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

	httpapi.RegisterHealth(app, service, sched.IsRunning)

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
