package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/forecast-browser/internal/api/http"
	"github.com/i474232898/forecast-browser/internal/client"
	"github.com/i474232898/forecast-browser/internal/config"
	"github.com/i474232898/forecast-browser/internal/logging"
	"github.com/i474232898/forecast-browser/internal/views"
	"github.com/i474232898/forecast-browser/internal/weather"
	"github.com/i474232898/forecast-browser/internal/weather/providers"
)

const appName = "forecast-browser"

// Set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg, version, appName))
	slog.Info("starting",
		"version", version,
		"env", cfg.AppEnv,
		"log_level", cfg.LogLevel.String(),
		"providers", cfg.Providers,
		"forecast_days", cfg.ForecastDays,
	)

	if err := views.LoadTemplates(); err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provs, err := providers.Build(cfg.Providers, providers.HTTPClientConfig{
		Client:  httpClient,
		Limiter: providers.NewLimiter(cfg.UpstreamRPS, cfg.UpstreamBurst),
	}, providers.Keys{
		OpenWeather: cfg.OpenWeatherAPIKey,
		WeatherAPI:  cfg.WeatherAPIKey,
	})
	if err != nil {
		slog.Error("failed to build providers", "error", err)
		os.Exit(1)
	}

	service := weather.NewService(provs, cfg.ForecastDays)

	var pageFetcher client.Fetcher = client.NewLocal(service)
	if cfg.ForecastAPIURL != "" {
		slog.Info("page fetches through remote backend", "url", cfg.ForecastAPIURL)
		pageFetcher = client.New(cfg.ForecastAPIURL, httpClient)
	}

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:    client.RequestIDHeader,
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${method} ${path} (${latency})\n",
	}))

	httpapi.RegisterRoutes(app, service, pageFetcher, httpapi.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		SessionTTL:   cfg.PageSessionTTL,
	})

	go func() {
		slog.Info("http listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("fiber server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
}
