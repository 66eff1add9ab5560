package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/forecast-browser/internal/weather"
)

// OpenWeatherProvider implements weather.Provider for the OpenWeatherMap
// 5 day / 3 hour forecast.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(cfg HTTPClientConfig, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/forecast",
		httpCfg: cfg,
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type openWeatherForecast struct {
	List []openWeatherEntry `json:"list"`
}

type openWeatherEntry struct {
	DtTxt string `json:"dt_txt"` // "2024-03-07 12:00:00"
	Main  struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
}

func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, city string, days int) (weather.ForecastSet, error) {
	if p.apiKey == "" {
		return weather.ForecastSet{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("units", "imperial")
		values.Set("appid", p.apiKey)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ForecastSet{}, err
	}
	defer resp.Body.Close()

	var payload openWeatherForecast
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastSet{}, fmt.Errorf("openweather: decode forecast: %w", err)
	}

	return groupOpenWeather(payload.List, days)
}

// groupOpenWeather splits each entry's dt_txt into date and time and
// groups the samples by date in arrival order.
func groupOpenWeather(entries []openWeatherEntry, days int) (weather.ForecastSet, error) {
	set := weather.NewForecastSet()
	for _, e := range entries {
		date, clock, ok := strings.Cut(e.DtTxt, " ")
		if !ok {
			return weather.ForecastSet{}, fmt.Errorf("openweather: malformed dt_txt %q", e.DtTxt)
		}

		var cond string
		if len(e.Weather) > 0 {
			cond = e.Weather[0].Main
		}

		appendLimited(&set, days, date, weather.ForecastSample{
			Time:      clock,
			Temp:      e.Main.Temp,
			FeelsLike: e.Main.FeelsLike,
			Humidity:  e.Main.Humidity,
			WindSpeed: e.Wind.Speed,
			WindDir:   compassDirection(e.Wind.Deg),
			Weather:   cond,
		})
	}
	return set, nil
}

// appendLimited appends sample unless it would open a date beyond days.
// A non-positive days means no limit.
func appendLimited(set *weather.ForecastSet, days int, date string, sample weather.ForecastSample) {
	if _, seen := set.Day(date); !seen && days > 0 && set.Len() >= days {
		return
	}
	set.Append(date, sample)
}
