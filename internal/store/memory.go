package store

import (
	"sync"

	"github.com/i474232898/forecast-browser/internal/weather"
)

// ForecastStore holds the current forecast set and the selected date.
// It is safe for concurrent use.
type ForecastStore struct {
	mu sync.RWMutex

	set weather.ForecastSet

	selected    string
	hasSelected bool
}

// NewForecastStore creates an empty store with no selection.
func NewForecastStore() *ForecastStore {
	return &ForecastStore{set: weather.NewForecastSet()}
}

// SetForecast replaces the stored set and resets the selection to its first
// date, discarding any previous selection even when it is still present.
// An empty set leaves nothing selected.
func (s *ForecastStore) SetForecast(set weather.ForecastSet) {
	set = set.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.set = set
	s.selected, s.hasSelected = set.First()
}

// SelectDate selects date. A date missing from the set is accepted; it just
// yields no selected day.
func (s *ForecastStore) SelectDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = date
	s.hasSelected = true
}

// SelectedDay returns the forecast of the selected date. ok is false when
// nothing is selected or the selection is not in the set.
func (s *ForecastStore) SelectedDay() (day weather.DayForecast, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasSelected {
		return nil, false
	}
	day, ok = s.set.Day(s.selected)
	if !ok {
		return nil, false
	}
	return append(weather.DayForecast(nil), day...), true
}

// Forecast returns a copy of the stored set.
func (s *ForecastStore) Forecast() weather.ForecastSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Clone()
}

// Snapshot returns a copy of the set together with the selection, read under
// one lock so the selection always refers to the returned set.
func (s *ForecastStore) Snapshot() (set weather.ForecastSet, selected string, hasSelected bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Clone(), s.selected, s.hasSelected
}

// Len returns the number of stored dates.
func (s *ForecastStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Len()
}
