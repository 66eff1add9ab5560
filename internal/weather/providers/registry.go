package providers

import (
	"fmt"
	"strings"

	"github.com/i474232898/forecast-browser/internal/weather"
)

// Keys holds the upstream credentials.
type Keys struct {
	OpenWeather string
	WeatherAPI  string
}

// Build constructs providers by name, in the given order.
func Build(names []string, cfg HTTPClientConfig, keys Keys) ([]weather.Provider, error) {
	provs := make([]weather.Provider, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "openweathermap", "openweather":
			provs = append(provs, NewOpenWeatherProvider(cfg, keys.OpenWeather))
		case "weatherapi":
			provs = append(provs, NewWeatherAPIProvider(cfg, keys.WeatherAPI))
		case "openmeteo":
			provs = append(provs, NewOpenMeteoProvider(cfg))
		case "":
		default:
			return nil, fmt.Errorf("unknown weather provider %q (allowed: openweathermap, weatherapi, openmeteo)", name)
		}
	}
	return provs, nil
}
