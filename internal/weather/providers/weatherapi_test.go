package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/i474232898/forecast-browser/internal/weather"
)

const weatherAPIBody = `{
  "location": {"name": "Paris"},
  "forecast": {"forecastday": [
    {"date": "2024-03-07", "hour": [
      {"time": "2024-03-07 11:00", "temp_f": 58.1, "feelslike_f": 56, "humidity": 60, "wind_mph": 6.9, "wind_dir": "WSW", "condition": {"text": "Partly cloudy"}},
      {"time": "2024-03-07 12:00", "temp_f": 60.4, "feelslike_f": 59, "humidity": 55, "wind_mph": 7.4, "wind_dir": "W", "condition": {"text": "Sunny"}}
    ]},
    {"date": "2024-03-08", "hour": [
      {"time": "2024-03-08 00:00", "temp_f": 44, "feelslike_f": 40, "humidity": 88, "wind_mph": 3, "wind_dir": "N", "condition": {"text": "Patchy rain nearby"}}
    ]}
  ]}
}`

func TestWeatherAPIProvider_FetchForecast(t *testing.T) {
	var gotDays string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDays = r.URL.Query().Get("days")
		_, _ = w.Write([]byte(weatherAPIBody))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(newTestConfig(srv), "secret")
	p.baseURL = srv.URL

	set, err := p.FetchForecast(context.Background(), "Paris", 0)
	if err != nil {
		t.Fatalf("FetchForecast() error = %v", err)
	}
	if gotDays != "3" {
		t.Errorf("days = %q; want default 3", gotDays)
	}
	if !reflect.DeepEqual(set.Dates, []string{"2024-03-07", "2024-03-08"}) {
		t.Fatalf("Dates = %v", set.Dates)
	}

	want := weather.ForecastSample{
		Time: "12:00:00", Temp: 60.4, FeelsLike: 59, Humidity: 55, WindSpeed: 7.4, WindDir: "W", Weather: "Sunny",
	}
	if got := set.Days["2024-03-07"][1]; got != want {
		t.Errorf("sample = %+v; want %+v", got, want)
	}
}

func TestWeatherAPIProvider_unknownLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(newTestConfig(srv), "secret")
	p.baseURL = srv.URL

	if _, err := p.FetchForecast(context.Background(), "Atlantis", 2); !errors.Is(err, weather.ErrCityNotFound) {
		t.Fatalf("FetchForecast() error = %v; want ErrCityNotFound", err)
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := map[string]string{
		"12:00":    "12:00:00",
		"09:30:00": "09:30:00",
	}
	for in, want := range tests {
		if got := normalizeClock(in); got != want {
			t.Errorf("normalizeClock(%q) = %q; want %q", in, got, want)
		}
	}
}
