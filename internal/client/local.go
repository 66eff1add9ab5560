package client

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/i474232898/forecast-browser/internal/weather"
)

// Local serves Fetch from an in-process weather.Service, reporting failures
// the same way the HTTP backend would.
type Local struct {
	service *weather.Service
}

// NewLocal wraps service as a Fetcher.
func NewLocal(service *weather.Service) *Local {
	return &Local{service: service}
}

func (l *Local) Fetch(ctx context.Context, city string) (weather.ForecastSet, error) {
	if strings.TrimSpace(city) == "" {
		return weather.ForecastSet{}, ErrBlankCity
	}

	set, err := l.service.GetForecast(ctx, city)
	if err != nil {
		if errors.Is(err, weather.ErrCityNotFound) {
			return weather.ForecastSet{}, &RemoteError{Status: http.StatusNotFound, Message: "City not found"}
		}
		if ctx.Err() != nil {
			return weather.ForecastSet{}, err
		}
		return weather.ForecastSet{}, &RemoteError{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return set, nil
}
