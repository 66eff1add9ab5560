package store

import (
	"sync"
	"testing"

	"github.com/i474232898/forecast-browser/internal/weather"
)

func newSet(dates ...string) weather.ForecastSet {
	set := weather.NewForecastSet()
	for i, d := range dates {
		set.Append(d, weather.ForecastSample{Time: "12:00:00", Temp: float64(50 + i)})
	}
	return set
}

func selectedOf(s *ForecastStore) (string, bool) {
	_, selected, ok := s.Snapshot()
	return selected, ok
}

func TestForecastStore_emptyHasNoSelection(t *testing.T) {
	s := NewForecastStore()
	if _, ok := selectedOf(s); ok {
		t.Fatal("selection ok = true on a new store; want false")
	}
	if _, ok := s.SelectedDay(); ok {
		t.Fatal("SelectedDay() ok = true on a new store; want false")
	}
}

func TestSetForecast_selectsFirstDate(t *testing.T) {
	s := NewForecastStore()
	s.SetForecast(newSet("2024-03-08", "2024-03-07", "2024-03-09"))

	got, ok := selectedOf(s)
	if !ok || got != "2024-03-08" {
		t.Fatalf("selection = %q, %v; want 2024-03-08, true", got, ok)
	}
	day, ok := s.SelectedDay()
	if !ok || len(day) != 1 || day[0].Temp != 50 {
		t.Fatalf("SelectedDay() = %+v, %v; want the first date's samples", day, ok)
	}
}

func TestSetForecast_resetsStillValidSelection(t *testing.T) {
	s := NewForecastStore()
	s.SetForecast(newSet("2024-03-07", "2024-03-08"))
	s.SelectDate("2024-03-08")

	s.SetForecast(newSet("2024-03-07", "2024-03-08"))

	if got, _ := selectedOf(s); got != "2024-03-07" {
		t.Fatalf("selection = %q after refresh; want 2024-03-07", got)
	}
}

func TestSetForecast_emptyClearsSelection(t *testing.T) {
	s := NewForecastStore()
	s.SetForecast(newSet("2024-03-07"))
	s.SetForecast(weather.NewForecastSet())

	if _, ok := selectedOf(s); ok {
		t.Fatal("selection ok = true after storing an empty set; want false")
	}
	if _, ok := s.SelectedDay(); ok {
		t.Fatal("SelectedDay() ok = true after storing an empty set; want false")
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d; want 0", s.Len())
	}
}

func TestSelectDate_absentDateShowsNothing(t *testing.T) {
	s := NewForecastStore()
	s.SetForecast(newSet("2024-03-07"))
	s.SelectDate("2030-01-01")

	if got, ok := selectedOf(s); !ok || got != "2030-01-01" {
		t.Fatalf("selection = %q, %v; want 2030-01-01, true", got, ok)
	}
	if _, ok := s.SelectedDay(); ok {
		t.Fatal("SelectedDay() ok = true for a date outside the set; want false")
	}
}

func TestForecast_returnsCopy(t *testing.T) {
	s := NewForecastStore()
	in := newSet("2024-03-07")
	s.SetForecast(in)

	in.Append("2024-03-08", weather.ForecastSample{Time: "00:00:00"})
	out := s.Forecast()
	out.Days["2024-03-07"][0].Temp = -1

	got := s.Forecast()
	if got.Len() != 1 {
		t.Fatalf("Len() = %d; want 1 (caller mutation leaked in)", got.Len())
	}
	if got.Days["2024-03-07"][0].Temp != 50 {
		t.Fatalf("Temp = %v; want 50 (returned copy aliased store)", got.Days["2024-03-07"][0].Temp)
	}
}

func TestSnapshot_selectionMatchesSet(t *testing.T) {
	s := NewForecastStore()
	a, b := newSet("2024-03-07", "2024-03-08"), newSet("2024-04-01")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				s.SetForecast(a)
			} else {
				s.SetForecast(b)
			}
		}
	}()

	for i := 0; i < 500; i++ {
		set, selected, ok := s.Snapshot()
		if !ok {
			continue
		}
		if _, found := set.Day(selected); !found {
			t.Fatalf("Snapshot() selected %q outside its set %v", selected, set.Dates)
		}
	}
	wg.Wait()
}

func TestSnapshot_absentSelection(t *testing.T) {
	s := NewForecastStore()
	s.SetForecast(newSet("2024-03-07"))
	s.SelectDate("1999-01-01")

	set, selected, ok := s.Snapshot()
	if !ok || selected != "1999-01-01" || set.Len() != 1 {
		t.Fatalf("Snapshot() = %v, %q, %v", set.Dates, selected, ok)
	}
}
