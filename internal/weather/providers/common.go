package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"slices"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/forecast-browser/internal/weather"
)

// HTTPClientConfig bundles the HTTP client and the upstream rate limit.
type HTTPClientConfig struct {
	Client *http.Client

	// Limiter throttles outbound calls. Nil means unlimited.
	Limiter *rate.Limiter
}

// NewLimiter builds a token bucket allowing rps requests per second.
// A non-positive rps disables limiting.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		// An unknown city is a valid answer, not an upstream fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, weather.ErrCityNotFound)
		},
	})
}

// doRequest executes one HTTP request through the rate limiter and the
// circuit breaker. There are no retries. A 404, or any of notFound when
// given, maps to weather.ErrCityNotFound; other non-2xx statuses are
// errors. On success the caller owns the response body.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
	notFound ...int,
) (*http.Response, error) {
	if len(notFound) == 0 {
		notFound = []int{http.StatusNotFound}
	}

	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}

	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	req, err := buildRequest()
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		drainAndClose(resp.Body)
		switch {
		case slices.Contains(notFound, resp.StatusCode):
			return nil, weather.ErrCityNotFound
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, errRateLimited
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		default:
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}

var compassPoints = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// compassDirection maps degrees to an 8 point compass label.
func compassDirection(deg float64) string {
	idx := int(math.Floor((deg+22.5)/45)) % len(compassPoints)
	if idx < 0 {
		idx += len(compassPoints)
	}
	return compassPoints[idx]
}
