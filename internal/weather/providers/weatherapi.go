package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/forecast-browser/internal/weather"
)

// weatherAPIDefaultDays is the free plan's forecast horizon.
const weatherAPIDefaultDays = 3

// WeatherAPIProvider implements weather.Provider for WeatherAPI.com hourly forecasts.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(cfg HTTPClientConfig, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		httpCfg: cfg,
		circuit: newCircuitBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type weatherAPIForecast struct {
	Forecast struct {
		ForecastDay []struct {
			Date string           `json:"date"`
			Hour []weatherAPIHour `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type weatherAPIHour struct {
	Time       string  `json:"time"` // "2024-03-07 13:00"
	TempF      float64 `json:"temp_f"`
	FeelsLikeF float64 `json:"feelslike_f"`
	Humidity   float64 `json:"humidity"`
	WindMph    float64 `json:"wind_mph"`
	WindDir    string  `json:"wind_dir"`
	Condition  struct {
		Text string `json:"text"`
	} `json:"condition"`
}

func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, city string, days int) (weather.ForecastSet, error) {
	if p.apiKey == "" {
		return weather.ForecastSet{}, fmt.Errorf("weatherapi api key is not configured")
	}
	if days <= 0 {
		days = weatherAPIDefaultDays
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", city)
		values.Set("days", strconv.Itoa(days))
		values.Set("aqi", "no")
		values.Set("alerts", "no")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	// WeatherAPI answers an unknown location with 400 (error code 1006).
	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest, http.StatusBadRequest, http.StatusNotFound)
	if err != nil {
		return weather.ForecastSet{}, err
	}
	defer resp.Body.Close()

	var payload weatherAPIForecast
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastSet{}, fmt.Errorf("weatherapi: decode forecast: %w", err)
	}

	set := weather.NewForecastSet()
	for _, fd := range payload.Forecast.ForecastDay {
		for _, h := range fd.Hour {
			date, clock, ok := strings.Cut(h.Time, " ")
			if !ok {
				return weather.ForecastSet{}, fmt.Errorf("weatherapi: malformed hour time %q", h.Time)
			}
			appendLimited(&set, days, date, weather.ForecastSample{
				Time:      normalizeClock(clock),
				Temp:      h.TempF,
				FeelsLike: h.FeelsLikeF,
				Humidity:  h.Humidity,
				WindSpeed: h.WindMph,
				WindDir:   h.WindDir,
				Weather:   h.Condition.Text,
			})
		}
	}
	return set, nil
}

// normalizeClock pads "HH:MM" to "HH:MM:SS".
func normalizeClock(clock string) string {
	if strings.Count(clock, ":") == 1 {
		return clock + ":00"
	}
	return clock
}
