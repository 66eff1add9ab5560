package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/forecast-browser/internal/session"
)

const defaultInterval = 15 * time.Minute

// Refresher periodically re-submits a session's city, replacing its
// forecast and resetting its selection on every successful fetch.
type Refresher struct {
	scheduler *gocron.Scheduler
	session   *session.Session
	interval  time.Duration
	timeout   time.Duration

	// OnRefresh, when set, runs after every attempt with its result.
	OnRefresh func(err error)
}

// New creates a Refresher for sess. A non-positive interval uses 15 minutes.
func New(sess *session.Session, interval, timeout time.Duration) *Refresher {
	if interval <= 0 {
		interval = defaultInterval
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Refresher{
		scheduler: gocron.NewScheduler(time.Local),
		session:   sess,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the refresh job, which first runs immediately, and starts
// the underlying scheduler.
func (r *Refresher) Start() error {
	_, err := r.scheduler.Every(r.interval).SingletonMode().Do(r.Refresh)
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	slog.Info("scheduler: refreshing forecast", "city", r.session.City(), "interval", r.interval)
	return nil
}

// Refresh runs one fetch attempt.
func (r *Refresher) Refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	err := r.session.Submit(ctx)
	if err != nil {
		slog.Warn("scheduler: refresh failed", "city", r.session.City(), "error", err)
	}
	if r.OnRefresh != nil {
		r.OnRefresh(err)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
