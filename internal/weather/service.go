package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Service resolves a city forecast from the configured providers.
type Service struct {
	providers []Provider
	days      int
}

// NewService creates a new Service. Providers are tried in order. days caps
// the number of dates requested; zero leaves it to each provider.
func NewService(providers []Provider, days int) *Service {
	return &Service{
		providers: providers,
		days:      days,
	}
}

// Providers returns the names of the configured providers in order.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// GetForecast asks each provider in turn and returns the first successful
// non-empty forecast. Each provider is called once. If no provider has data
// but one answered with an empty forecast, the empty set is returned. When
// every provider fails and one of them reported an unknown city,
// ErrCityNotFound is returned.
func (s *Service) GetForecast(ctx context.Context, city string) (ForecastSet, error) {
	city = strings.TrimSpace(city)
	if len(s.providers) == 0 {
		slog.Error("no providers available to fetch forecast", "city", city)
		return ForecastSet{}, ErrNoProviders
	}

	var (
		errs     []error
		notFound bool
		empty    bool
	)
	for _, p := range s.providers {
		if ctx.Err() != nil {
			return ForecastSet{}, ctx.Err()
		}

		set, err := p.FetchForecast(ctx, city, s.days)
		if err != nil {
			if errors.Is(err, ErrCityNotFound) {
				notFound = true
			}
			slog.Warn("provider forecast failed", "provider", p.Name(), "city", city, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		if set.Len() == 0 {
			slog.Warn("provider returned empty forecast", "provider", p.Name(), "city", city)
			empty = true
			continue
		}

		slog.Debug("forecast fetched", "provider", p.Name(), "city", city, "days", set.Len())
		return set, nil
	}

	if empty {
		return NewForecastSet(), nil
	}
	if notFound {
		return ForecastSet{}, ErrCityNotFound
	}
	return ForecastSet{}, errors.Join(errs...)
}
