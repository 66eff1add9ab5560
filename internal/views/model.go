package views

import (
	"fmt"

	"github.com/i474232898/forecast-browser/internal/weather"
)

// Page is the view model of the whole forecast page.
type Page struct {
	City         string
	InfoVisible  bool
	Notice       string
	SelectedDate string
	Buttons      []DayButton
	Detail       *Detail // nil when the selection has no data
}

// DayButton is one entry of the day selector.
type DayButton struct {
	Date      string
	Weekday   string
	ShortDate string
	Temp      string
	Icon      string
	Selected  bool
}

// Label is the weekday and short date, e.g. "Thu 03/07".
func (b DayButton) Label() string {
	return b.Weekday + " " + b.ShortDate
}

// String renders the button as one line, e.g. "Thu 03/07, 60°F ☀️".
func (b DayButton) String() string {
	return fmt.Sprintf("%s, %s°F %s", b.Label(), b.Temp, b.Icon)
}

// Detail is the panel of the selected day.
type Detail struct {
	Date    string
	Header  string
	Temp    string
	Weather string
	Icon    string
	Rows    []Row
}

// Row is one hourly sample in the detail table.
type Row struct {
	Time      string
	Temp      string
	FeelsLike string
	Humidity  string
	Wind      string
	Weather   string
	Icon      string
}

// BuildDayButtons returns one button per date of set, in set order.
func BuildDayButtons(set weather.ForecastSet, selected string) []DayButton {
	buttons := make([]DayButton, 0, set.Len())
	for _, date := range set.Dates {
		summary, ok := weather.Summarize(set.Days[date])
		if !ok {
			continue
		}
		buttons = append(buttons, DayButton{
			Date:      date,
			Weekday:   weather.WeekdayLabel(date),
			ShortDate: weather.FormatShortDate(date),
			Temp:      weather.FormatTemp(summary.Temp),
			Icon:      summary.Icon,
			Selected:  date == selected,
		})
	}
	return buttons
}

// BuildDetail returns the detail panel for date, or nil for an empty day.
func BuildDetail(date string, day weather.DayForecast) *Detail {
	summary, ok := weather.Summarize(day)
	if !ok {
		return nil
	}

	rows := make([]Row, 0, len(day))
	for _, s := range day {
		rows = append(rows, Row{
			Time:      s.Time,
			Temp:      weather.FormatTemp(s.Temp),
			FeelsLike: weather.FormatTemp(s.FeelsLike),
			Humidity:  weather.FormatTemp(s.Humidity),
			Wind:      fmt.Sprintf("%s mph %s", weather.FormatTemp(s.WindSpeed), s.WindDir),
			Weather:   s.Weather,
			Icon:      weather.WeatherIcon(s.Weather),
		})
	}

	return &Detail{
		Date:    date,
		Header:  weather.WeekdayLabel(date) + " " + weather.FormatShortDate(date),
		Temp:    weather.FormatTemp(summary.Temp),
		Weather: summary.Weather,
		Icon:    summary.Icon,
		Rows:    rows,
	}
}
