package views

import (
	"testing"

	"github.com/i474232898/forecast-browser/internal/weather"
)

func TestBuildDayButtons(t *testing.T) {
	set := weather.NewForecastSet()
	set.Append("2024-03-08", weather.ForecastSample{Time: "09:00:00", Temp: 40, Weather: "overcast clouds"})
	set.Append("2024-03-07", weather.ForecastSample{Time: "12:00:00", Temp: 60.5, Weather: "clear sky"})

	got := BuildDayButtons(set, "2024-03-07")
	if len(got) != 2 {
		t.Fatalf("len = %d; want 2", len(got))
	}

	if got[0].Date != "2024-03-08" || got[0].Selected {
		t.Errorf("got[0] = %+v; want unselected 2024-03-08 first", got[0])
	}
	if got[0].String() != "Fri 03/08, 40°F ☁️" {
		t.Errorf("got[0].String() = %q", got[0].String())
	}
	if !got[1].Selected || got[1].Label() != "Thu 03/07" || got[1].Temp != "60.5" {
		t.Errorf("got[1] = %+v", got[1])
	}
}

func TestBuildDayButtons_unknownSelection(t *testing.T) {
	set := weather.NewForecastSet()
	set.Append("2024-03-07", weather.ForecastSample{Time: "12:00:00", Weather: "haze"})

	got := BuildDayButtons(set, "")
	if len(got) != 1 || got[0].Selected || got[0].Icon != weather.IconUnknown {
		t.Fatalf("buttons = %+v", got)
	}
}

func TestBuildDetail(t *testing.T) {
	day := weather.DayForecast{
		{Time: "06:00:00", Temp: 41, FeelsLike: 38, Humidity: 80, WindSpeed: 3.5, WindDir: "SW", Weather: "freezing rain"},
		{Time: "21:00:00", Temp: 44, FeelsLike: 42, Humidity: 70, WindSpeed: 2, WindDir: "S", Weather: "scattered clouds"},
	}

	d := BuildDetail("2024-03-07", day)
	if d == nil {
		t.Fatal("BuildDetail() = nil")
	}
	// No noon sample: the last one represents the day.
	if d.Header != "Thu 03/07" || d.Temp != "44" || d.Weather != "scattered clouds" || d.Icon != weather.IconCloudy {
		t.Errorf("summary = %+v", d)
	}

	want := Row{Time: "06:00:00", Temp: "41", FeelsLike: "38", Humidity: "80", Wind: "3.5 mph SW", Weather: "freezing rain", Icon: weather.IconRain}
	if d.Rows[0] != want {
		t.Errorf("Rows[0] = %+v; want %+v", d.Rows[0], want)
	}
}

func TestBuildDetail_emptyDay(t *testing.T) {
	if d := BuildDetail("2024-03-07", nil); d != nil {
		t.Fatalf("BuildDetail(empty) = %+v; want nil", d)
	}
}
