package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	AppEnv   string
	LogLevel slog.Level
	Port     string

	// Providers lists upstream forecast sources in the order they are tried.
	Providers         []string
	OpenWeatherAPIKey string
	WeatherAPIKey     string

	// ForecastDays caps the number of dates requested (0 = provider default).
	ForecastDays int

	// HTTPTimeout bounds each outbound call.
	HTTPTimeout time.Duration

	// Upstream rate limit shared by all providers.
	UpstreamRPS   float64
	UpstreamBurst int

	// ForecastAPIURL, when set, makes the HTML page fetch through the HTTP
	// client against that backend instead of calling providers in-process.
	ForecastAPIURL string

	// CORSAllowOrigins is the Access-Control-Allow-Origin list of the JSON
	// endpoints.
	CORSAllowOrigins string

	// PageSessionTTL is how long an idle browser keeps its page state.
	PageSessionTTL time.Duration
}

// Load reads configuration from the environment (and .env, when present)
// with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	switch cfg.AppEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", cfg.AppEnv)
	}

	level, err := ParseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.Port = getenvDefault("PORT", "8080")

	cfg.Providers = splitList(getenvDefault("WEATHER_PROVIDERS", "openweathermap"))
	if len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("WEATHER_PROVIDERS must name at least one provider")
	}
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")

	days, err := getenvInt("FORECAST_DAYS", 6)
	if err != nil {
		return nil, err
	}
	if days < 0 {
		return nil, fmt.Errorf("FORECAST_DAYS must be >= 0")
	}
	cfg.ForecastDays = days

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	rps, err := strconv.ParseFloat(getenvDefault("UPSTREAM_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_RPS: %w", err)
	}
	cfg.UpstreamRPS = rps

	burst, err := getenvInt("UPSTREAM_BURST", 10)
	if err != nil {
		return nil, err
	}
	cfg.UpstreamBurst = burst

	cfg.ForecastAPIURL = strings.TrimSpace(os.Getenv("FORECAST_API_URL"))
	cfg.CORSAllowOrigins = getenvDefault("CORS_ALLOW_ORIGINS", "*")

	ttl, err := time.ParseDuration(getenvDefault("PAGE_SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAGE_SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("PAGE_SESSION_TTL must be > 0")
	}
	cfg.PageSessionTTL = ttl

	return cfg, nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
