package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "LOG_LEVEL", "PORT", "WEATHER_PROVIDERS", "FORECAST_DAYS",
		"HTTP_TIMEOUT", "UPSTREAM_RPS", "UPSTREAM_BURST", "FORECAST_API_URL",
		"CORS_ALLOW_ORIGINS", "PAGE_SESSION_TTL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AppEnv != "dev" {
		t.Errorf("AppEnv = %q; want dev", cfg.AppEnv)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v; want info", cfg.LogLevel)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q; want 8080", cfg.Port)
	}
	if len(cfg.Providers) != 1 || cfg.Providers[0] != "openweathermap" {
		t.Errorf("Providers = %v; want [openweathermap]", cfg.Providers)
	}
	if cfg.ForecastDays != 6 {
		t.Errorf("ForecastDays = %d; want 6", cfg.ForecastDays)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v; want 10s", cfg.HTTPTimeout)
	}
	if cfg.UpstreamRPS != 5 || cfg.UpstreamBurst != 10 {
		t.Errorf("rate = %v/%d; want 5/10", cfg.UpstreamRPS, cfg.UpstreamBurst)
	}
	if cfg.ForecastAPIURL != "" {
		t.Errorf("ForecastAPIURL = %q; want empty", cfg.ForecastAPIURL)
	}
	if cfg.CORSAllowOrigins != "*" || cfg.PageSessionTTL != 24*time.Hour {
		t.Errorf("cors/ttl = %q/%v; want */24h", cfg.CORSAllowOrigins, cfg.PageSessionTTL)
	}
}

func TestLoad_overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WEATHER_PROVIDERS", " weatherapi , openmeteo ,")
	t.Setenv("FORECAST_DAYS", "3")
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("FORECAST_API_URL", "http://localhost:5000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AppEnv != "prod" || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("env/level = %q/%v; want prod/debug", cfg.AppEnv, cfg.LogLevel)
	}
	if len(cfg.Providers) != 2 || cfg.Providers[0] != "weatherapi" || cfg.Providers[1] != "openmeteo" {
		t.Errorf("Providers = %v; want [weatherapi openmeteo]", cfg.Providers)
	}
	if cfg.ForecastDays != 3 || cfg.HTTPTimeout != 2*time.Second {
		t.Errorf("days/timeout = %d/%v; want 3/2s", cfg.ForecastDays, cfg.HTTPTimeout)
	}
	if cfg.ForecastAPIURL != "http://localhost:5000" {
		t.Errorf("ForecastAPIURL = %q", cfg.ForecastAPIURL)
	}
}

func TestLoad_invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"app env", "APP_ENV", "staging"},
		{"log level", "LOG_LEVEL", "loud"},
		{"days", "FORECAST_DAYS", "many"},
		{"negative days", "FORECAST_DAYS", "-1"},
		{"timeout", "HTTP_TIMEOUT", "soon"},
		{"rps", "UPSTREAM_RPS", "fast"},
		{"burst", "UPSTREAM_BURST", "big"},
		{"providers", "WEATHER_PROVIDERS", " , "},
		{"session ttl", "PAGE_SESSION_TTL", "forever"},
		{"zero session ttl", "PAGE_SESSION_TTL", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() with %s=%q = nil error; want error", tt.key, tt.value)
			}
		})
	}
}
