package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/i474232898/forecast-browser/internal/client"
	"github.com/i474232898/forecast-browser/internal/config"
	"github.com/i474232898/forecast-browser/internal/logging"
	"github.com/i474232898/forecast-browser/internal/scheduler"
	"github.com/i474232898/forecast-browser/internal/session"
	"github.com/i474232898/forecast-browser/internal/views"
)

const appName = "forecast-cli"

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	defaultAPI := cfg.ForecastAPIURL
	if defaultAPI == "" {
		defaultAPI = "http://localhost:" + cfg.Port
	}

	var (
		city    = flag.String("city", "", "city to fetch the forecast for")
		date    = flag.String("date", "", "day to show (YYYY-MM-DD); defaults to the first day")
		apiURL  = flag.String("api", defaultAPI, "forecast backend base URL")
		watch   = flag.Duration("watch", 0, "refresh interval; 0 fetches once")
		showInf = flag.Bool("info", false, "show the informational panel")
	)
	flag.Parse()

	slog.SetDefault(logging.New(os.Stderr, cfg, version, appName))

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	sess := session.New(client.New(*apiURL, httpClient))
	sess.SetCity(*city)
	sess.SetInfoVisible(*showInf)

	render := func() {
		if *date != "" {
			sess.SelectDate(*date)
			if _, ok := sess.Store().SelectedDay(); !ok && sess.Store().Len() > 0 {
				slog.Warn("no forecast for requested date", "date", *date, "available", sess.Store().Forecast().Dates)
			}
		}
		page := sess.View()
		if page.InfoVisible {
			fmt.Println("Type a city name to load a multi-day forecast; pick a day with -date.")
			fmt.Println()
		}
		if err := views.RenderText(os.Stdout, &page); err != nil {
			slog.Error("render failed", "error", err)
		}
		if page.Notice == "" && sess.Store().Len() == 0 {
			fmt.Printf("No forecast data for %s.\n", sess.City())
		}
	}

	if *watch <= 0 {
		err := sess.Submit(context.Background())
		render()
		if err != nil {
			os.Exit(1)
		}
		return
	}

	refresher := scheduler.New(sess, *watch, cfg.HTTPTimeout)
	refresher.OnRefresh = func(err error) {
		if errors.Is(err, session.ErrStale) {
			return
		}
		fmt.Printf("--- %s ---\n", time.Now().Format(time.Kitchen))
		render()
	}
	if err := refresher.Start(); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer refresher.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
}
