package weather

import (
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/forecast-browser/internal/common"
)

// NoonTime is the sample time preferred as a day's representative reading.
const NoonTime = "12:00:00"

// Icon glyphs per condition.
const (
	IconClear   = "☀️"
	IconCloudy  = "☁️"
	IconRain    = "🌧️"
	IconUnknown = "❓"
)

// DaySummary is the representative reading of a day.
type DaySummary struct {
	Temp    float64
	Weather string
	Icon    string
}

// RepresentativeSample returns the sample taken at exactly noon, or the last
// sample of the day when there is none. day must not be empty.
func RepresentativeSample(day DayForecast) ForecastSample {
	for _, s := range day {
		if s.Time == NoonTime {
			return s
		}
	}
	return day[len(day)-1]
}

// Summarize derives the representative reading of day. ok is false for an
// empty day.
func Summarize(day DayForecast) (summary DaySummary, ok bool) {
	if len(day) == 0 {
		return DaySummary{}, false
	}
	s := RepresentativeSample(day)
	return DaySummary{
		Temp:    s.Temp,
		Weather: s.Weather,
		Icon:    WeatherIcon(s.Weather),
	}, true
}

// ClassifyCondition maps a free-text description to a Condition. Matching is
// case-insensitive and the first rule wins: clear, then cloud, then rain.
func ClassifyCondition(description string) Condition {
	switch {
	case common.ContainsFold(description, "clear"):
		return ConditionClear
	case common.ContainsFold(description, "cloud"):
		return ConditionCloudy
	case common.ContainsFold(description, "rain"):
		return ConditionRain
	default:
		return ConditionUnknown
	}
}

// Icon returns the glyph shown for c.
func (c Condition) Icon() string {
	switch c {
	case ConditionClear:
		return IconClear
	case ConditionCloudy:
		return IconCloudy
	case ConditionRain:
		return IconRain
	default:
		return IconUnknown
	}
}

// WeatherIcon returns the glyph for a free-text description.
func WeatherIcon(description string) string {
	return ClassifyCondition(description).Icon()
}

// FormatShortDate turns "YYYY-MM-DD" into "MM/DD". The input is not
// validated; malformed dates give malformed output and fields past the
// third are ignored.
func FormatShortDate(date string) string {
	parts := strings.Split(date, "-")
	var month, day string
	if len(parts) > 1 {
		month = parts[1]
	}
	if len(parts) > 2 {
		day = parts[2]
	}
	return month + "/" + day
}

// WeekdayLabel returns the English three letter weekday of date, read as
// local midnight. It returns "" when date does not parse.
func WeekdayLabel(date string) string {
	t, err := time.ParseInLocation(time.DateOnly, date, time.Local)
	if err != nil {
		return ""
	}
	return t.Format("Mon")
}

// FormatTemp renders a reading in its shortest decimal form ("60", "59.36").
func FormatTemp(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
