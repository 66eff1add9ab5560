package weather

import (
	"context"
	"errors"
)

var (
	// ErrCityNotFound is returned when a provider does not know the requested city.
	ErrCityNotFound = errors.New("city not found")

	// ErrNoProviders is returned when the service has nothing to ask.
	ErrNoProviders = errors.New("no weather providers configured")
)

// Provider abstracts an upstream forecast source (OpenWeatherMap, WeatherAPI, Open-Meteo).
type Provider interface {
	Name() string
	// FetchForecast returns up to days of samples for city, grouped by local date.
	FetchForecast(ctx context.Context, city string, days int) (ForecastSet, error)
}
