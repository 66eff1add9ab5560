package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/i474232898/forecast-browser/internal/client"
	"github.com/i474232898/forecast-browser/internal/store"
	"github.com/i474232898/forecast-browser/internal/views"
)

// Notices shown to the user.
const (
	NoticeBlankCity  = "Please enter a city name."
	NoticeFetchError = "Error fetching weather data"
)

// ErrStale is returned by Submit when a later Submit was issued while this
// one was in flight. Its result was dropped.
var ErrStale = errors.New("forecast response superseded by a newer request")

// Session is the presentation state of one forecast page: the typed city,
// info panel visibility, the current notice and the forecast store.
//
// Overlapping fetches are resolved by request sequence: only the response
// to the most recently issued Submit is ever stored.
type Session struct {
	fetcher client.Fetcher
	store   *store.ForecastStore

	mu          sync.Mutex
	city        string
	infoVisible bool
	notice      string
	seq         uint64
}

// New creates an empty Session fetching through f.
func New(f client.Fetcher) *Session {
	return &Session{
		fetcher: f,
		store:   store.NewForecastStore(),
	}
}

// Store exposes the forecast store.
func (s *Session) Store() *store.ForecastStore {
	return s.store
}

// SetCity records the city input text.
func (s *Session) SetCity(city string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.city = city
}

// City returns the city input text.
func (s *Session) City() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.city
}

// ToggleInfo flips the informational panel.
func (s *Session) ToggleInfo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infoVisible = !s.infoVisible
}

// SetInfoVisible shows or hides the informational panel.
func (s *Session) SetInfoVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infoVisible = visible
}

// SelectDate selects the day shown in the detail panel.
func (s *Session) SelectDate(date string) {
	s.store.SelectDate(date)
}

// Notice returns the last user notice, or "".
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// DismissNotice clears the user notice.
func (s *Session) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = ""
}

// Submit fetches the forecast of the current city. A blank city sets the
// validation notice and makes no request. A failed fetch sets a notice and
// leaves the stored forecast unchanged. The error is returned for the
// caller's information only; the session remains usable either way.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	city := s.city
	if strings.TrimSpace(city) == "" {
		s.notice = NoticeBlankCity
		s.mu.Unlock()
		return client.ErrBlankCity
	}
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	reqID := client.RequestID(ctx)
	ctx = client.WithRequestID(ctx, reqID)
	log := slog.With("city", city, "request_id", reqID, "seq", seq)

	set, err := s.fetcher.Fetch(ctx, city)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		log.Debug("dropping stale forecast response", "latest_seq", s.seq)
		return ErrStale
	}

	if err != nil {
		var remote *client.RemoteError
		switch {
		case errors.As(err, &remote):
			log.Info("forecast rejected", "status", remote.Status, "message", remote.Message)
			s.notice = remote.Message
		case errors.Is(err, client.ErrBlankCity):
			s.notice = NoticeBlankCity
		default:
			log.Error("error fetching weather data", "error", err)
			s.notice = NoticeFetchError
		}
		return err
	}

	s.notice = ""
	s.store.SetForecast(set)
	log.Debug("forecast stored", "days", set.Len())
	return nil
}

// View returns a snapshot of the session for rendering.
func (s *Session) View() views.Page {
	s.mu.Lock()
	page := views.Page{
		City:        s.city,
		InfoVisible: s.infoVisible,
		Notice:      s.notice,
	}
	s.mu.Unlock()

	set, selected, ok := s.store.Snapshot()
	if !ok {
		selected = ""
	}
	page.SelectedDate = selected
	page.Buttons = views.BuildDayButtons(set, selected)
	if day, ok := set.Day(selected); ok && len(day) > 0 {
		page.Detail = views.BuildDetail(selected, day)
	}
	return page
}
