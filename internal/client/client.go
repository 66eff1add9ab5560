package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/i474232898/forecast-browser/internal/common"
	"github.com/i474232898/forecast-browser/internal/weather"
)

// RequestIDHeader carries the id tagging one forecast request end to end.
const RequestIDHeader = "X-Request-ID"

// DefaultRemoteMessage is used when a rejection carries no readable message.
const DefaultRemoteMessage = "Failed to fetch weather"

// ErrBlankCity is returned before any network call when the city is blank.
var ErrBlankCity = errors.New("city name is blank")

// RemoteError is a non-2xx answer from the forecast backend.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("forecast backend returned %d: %s", e.Status, e.Message)
}

// Fetcher fetches the forecast of a city.
type Fetcher interface {
	Fetch(ctx context.Context, city string) (weather.ForecastSet, error)
}

// Client calls the forecast backend's GET /weather endpoint. Each Fetch is
// a single attempt.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for baseURL. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Fetch returns the forecast for city. Errors are ErrBlankCity, a
// *RemoteError, or a wrapped transport or decoding error.
func (c *Client) Fetch(ctx context.Context, city string) (weather.ForecastSet, error) {
	if strings.TrimSpace(city) == "" {
		return weather.ForecastSet{}, ErrBlankCity
	}

	u := fmt.Sprintf("%s/weather?city=%s", c.baseURL, url.QueryEscape(city))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return weather.ForecastSet{}, fmt.Errorf("forecast: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, RequestID(ctx))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weather.ForecastSet{}, fmt.Errorf("forecast: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return weather.ForecastSet{}, &RemoteError{
			Status:  resp.StatusCode,
			Message: readErrorMessage(resp.Body),
		}
	}

	var set weather.ForecastSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return weather.ForecastSet{}, fmt.Errorf("forecast: decode response: %w", err)
	}
	return set, nil
}

// readErrorMessage extracts {"error": "..."} from a rejection body, falling
// back to DefaultRemoteMessage.
func readErrorMessage(body io.Reader) string {
	var payload struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&payload); err != nil {
		return DefaultRemoteMessage
	}

	var msg string
	if err := json.Unmarshal(payload.Error, &msg); err != nil {
		return DefaultRemoteMessage
	}
	return common.FirstNonEmpty(msg, DefaultRemoteMessage)
}

type requestIDKey struct{}

// WithRequestID returns a context whose forecast requests carry id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored in ctx, or a fresh one.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
