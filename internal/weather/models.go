package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
)

// ForecastSample is one hourly (or three-hourly) forecast entry.
// Temperatures are Fahrenheit, wind speed is mph.
type ForecastSample struct {
	Time      string  `json:"time"` // HH:MM:SS, 24h clock
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
	WindSpeed float64 `json:"wind_s"`
	WindDir   string  `json:"wind_d"`
	Weather   string  `json:"weather"`
}

// DayForecast holds the samples of one calendar date, ordered by Time ascending.
type DayForecast []ForecastSample

// ForecastSet maps a YYYY-MM-DD date to its DayForecast.
// Dates keeps the insertion order, which is the order the provider or the
// JSON document returned them in. It is never re-sorted.
type ForecastSet struct {
	Dates []string
	Days  map[string]DayForecast
}

// NewForecastSet returns an empty, ready to use set.
func NewForecastSet() ForecastSet {
	return ForecastSet{Days: make(map[string]DayForecast)}
}

// Len returns the number of dates in the set.
func (s ForecastSet) Len() int {
	return len(s.Dates)
}

// Day returns the forecast for date.
func (s ForecastSet) Day(date string) (DayForecast, bool) {
	day, ok := s.Days[date]
	return day, ok
}

// First returns the first date in iteration order.
func (s ForecastSet) First() (string, bool) {
	if len(s.Dates) == 0 {
		return "", false
	}
	return s.Dates[0], true
}

// Append adds a sample to date, registering the date on first use.
func (s *ForecastSet) Append(date string, sample ForecastSample) {
	if s.Days == nil {
		s.Days = make(map[string]DayForecast)
	}
	if _, ok := s.Days[date]; !ok {
		s.Dates = append(s.Dates, date)
	}
	s.Days[date] = append(s.Days[date], sample)
}

// Add stores a whole day. Empty days are dropped so that every key maps to
// at least one sample. A repeated date replaces the earlier value in place.
func (s *ForecastSet) Add(date string, day DayForecast) {
	if len(day) == 0 {
		return
	}
	if s.Days == nil {
		s.Days = make(map[string]DayForecast)
	}
	if _, ok := s.Days[date]; !ok {
		s.Dates = append(s.Dates, date)
	}
	s.Days[date] = day
}

// Clone returns a deep copy of the set.
func (s ForecastSet) Clone() ForecastSet {
	out := ForecastSet{
		Dates: append([]string(nil), s.Dates...),
		Days:  make(map[string]DayForecast, len(s.Days)),
	}
	for k, v := range s.Days {
		out.Days[k] = append(DayForecast(nil), v...)
	}
	return out
}

// MarshalJSON writes the set as a JSON object whose keys follow Dates.
func (s ForecastSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, date := range s.Dates {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(date)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		day := s.Days[date]
		if day == nil {
			day = DayForecast{}
		}
		val, err := json.Marshal(day)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of date -> samples, keeping the key
// order of the document.
func (s *ForecastSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("forecast set: expected JSON object, got %v", tok)
	}

	out := NewForecastSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		date, ok := tok.(string)
		if !ok {
			return fmt.Errorf("forecast set: unexpected key %v", tok)
		}

		var day DayForecast
		if err := dec.Decode(&day); err != nil {
			return fmt.Errorf("forecast set: date %q: %w", date, err)
		}
		out.Add(date, day)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}
