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

// OpenMeteoProvider implements weather.Provider for Open-Meteo. The city is
// resolved with the Open-Meteo geocoding API first, so no key is needed.
type OpenMeteoProvider struct {
	name       string
	geocodeURL string
	baseURL    string
	httpCfg    HTTPClientConfig
	circuit    *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(cfg HTTPClientConfig) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:       "openmeteo",
		geocodeURL: "https://geocoding-api.open-meteo.com/v1/search",
		baseURL:    "https://api.open-meteo.com/v1/forecast",
		httpCfg:    cfg,
		circuit:    newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoPlace struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type openMeteoHourly struct {
	Hourly struct {
		Time          []string  `json:"time"` // "2024-03-07T13:00"
		Temperature   []float64 `json:"temperature_2m"`
		Apparent      []float64 `json:"apparent_temperature"`
		Humidity      []float64 `json:"relative_humidity_2m"`
		WindSpeed     []float64 `json:"wind_speed_10m"`
		WindDirection []float64 `json:"wind_direction_10m"`
		WeatherCode   []int     `json:"weather_code"`
	} `json:"hourly"`
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, city string, days int) (weather.ForecastSet, error) {
	place, err := p.geocode(ctx, city)
	if err != nil {
		return weather.ForecastSet{}, err
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(place.Latitude, 'f', 4, 64))
		values.Set("longitude", strconv.FormatFloat(place.Longitude, 'f', 4, 64))
		values.Set("hourly", "temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,wind_direction_10m,weather_code")
		values.Set("temperature_unit", "fahrenheit")
		values.Set("wind_speed_unit", "mph")
		values.Set("timezone", "auto")
		if days > 0 {
			values.Set("forecast_days", strconv.Itoa(days))
		}

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ForecastSet{}, err
	}
	defer resp.Body.Close()

	var payload openMeteoHourly
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastSet{}, fmt.Errorf("openmeteo: decode forecast: %w", err)
	}

	return groupOpenMeteo(payload, days)
}

func (p *OpenMeteoProvider) geocode(ctx context.Context, city string) (openMeteoPlace, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", city)
		values.Set("count", "1")
		values.Set("language", "en")
		values.Set("format", "json")

		u := fmt.Sprintf("%s?%s", p.geocodeURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return openMeteoPlace{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []openMeteoPlace `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return openMeteoPlace{}, fmt.Errorf("openmeteo: decode geocoding: %w", err)
	}
	if len(payload.Results) == 0 {
		return openMeteoPlace{}, weather.ErrCityNotFound
	}
	return payload.Results[0], nil
}

func groupOpenMeteo(payload openMeteoHourly, days int) (weather.ForecastSet, error) {
	h := payload.Hourly
	n := len(h.Time)
	if len(h.Temperature) != n || len(h.Apparent) != n || len(h.Humidity) != n ||
		len(h.WindSpeed) != n || len(h.WindDirection) != n || len(h.WeatherCode) != n {
		return weather.ForecastSet{}, fmt.Errorf("openmeteo: hourly series have different lengths")
	}

	set := weather.NewForecastSet()
	for i, ts := range h.Time {
		date, clock, ok := strings.Cut(ts, "T")
		if !ok {
			return weather.ForecastSet{}, fmt.Errorf("openmeteo: malformed time %q", ts)
		}
		appendLimited(&set, days, date, weather.ForecastSample{
			Time:      normalizeClock(clock),
			Temp:      h.Temperature[i],
			FeelsLike: h.Apparent[i],
			Humidity:  h.Humidity[i],
			WindSpeed: h.WindSpeed[i],
			WindDir:   compassDirection(h.WindDirection[i]),
			Weather:   describeOpenMeteoCode(h.WeatherCode[i]),
		})
	}
	return set, nil
}

// describeOpenMeteoCode maps WMO weather codes (simplified) to text.
func describeOpenMeteoCode(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code == 1:
		return "Mainly clear"
	case code == 2:
		return "Partly cloudy"
	case code == 3:
		return "Overcast clouds"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code == 85 || code == 86:
		return "Snow showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}
