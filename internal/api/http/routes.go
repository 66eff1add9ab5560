package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/i474232898/forecast-browser/internal/client"
	"github.com/i474232898/forecast-browser/internal/views"
	"github.com/i474232898/forecast-browser/internal/weather"
)

// Error messages of the /weather endpoint.
const (
	MsgCityRequired = "City parameter is required"
	MsgCityNotFound = "City not found"
)

// requestIDLocal is the fiber Locals key the requestid middleware uses.
const requestIDLocal = "requestid"

var validate = validator.New()

// ErrorHandler renders every error as {"error": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// Config tunes the HTTP surface.
type Config struct {
	// AllowOrigins is the CORS origin list of /weather and /health; "*" when empty.
	AllowOrigins string
	// SessionTTL is the idle lifetime of a browser's page state; 24h when zero.
	SessionTTL time.Duration
}

// Page actions carried in the action query parameter.
const (
	actionToggleInfo    = "info"
	actionDismissNotice = "dismiss"
)

// RegisterRoutes wires the HTTP handlers into the Fiber app. The forecast
// page fetches through pageFetcher; /weather always uses service.
func RegisterRoutes(app *fiber.App, service *weather.Service, pageFetcher client.Fetcher, cfg Config) {
	origins := cfg.AllowOrigins
	if origins == "" {
		origins = "*"
	}
	api := cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,HEAD,OPTIONS",
	})
	app.Use("/weather", api)
	app.Use("/health", api)

	pages := newPageSessions(pageFetcher, cfg.SessionTTL)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "forecast-browser",
			"providers": service.Providers(),
		})
	})

	app.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, MsgCityRequired)
		}

		set, err := service.GetForecast(requestContext(c), q.City)
		if err != nil {
			if errors.Is(err, weather.ErrCityNotFound) {
				return fiber.NewError(fiber.StatusNotFound, MsgCityNotFound)
			}
			slog.Error("forecast failed", "city", q.City, "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(set)
	})

	// The page keeps its state per browser: a day click or an info toggle
	// only changes that state, and only an explicit submit fetches.
	app.Get("/", func(c *fiber.Ctx) error {
		q, err := parsePageQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		sess, err := pages.get(c)
		if err != nil {
			return err
		}

		switch q.Action {
		case actionToggleInfo:
			sess.ToggleInfo()
		case actionDismissNotice:
			sess.DismissNotice()
		}
		if q.Submit {
			sess.SetCity(q.City)
			// Failures surface as the page notice.
			_ = sess.Submit(requestContext(c))
		}
		if q.Date != "" {
			sess.SelectDate(q.Date)
		}

		page := sess.View()
		return sendHTML(c, func(w io.Writer) error { return views.RenderPage(w, &page) })
	})

	// Detail fragment of one day, for in-place updates of the panel.
	app.Get("/partials/detail", func(c *fiber.Ctx) error {
		q, err := parsePageQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		sess, err := pages.get(c)
		if err != nil {
			return err
		}
		if q.Date != "" {
			sess.SelectDate(q.Date)
		}

		page := sess.View()
		return sendHTML(c, func(w io.Writer) error { return views.RenderDetailPartial(w, page.Detail) })
	})
}

// sendHTML renders into a buffer first so a template failure never leaves a
// half-written page.
func sendHTML(c *fiber.Ctx, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		slog.Error("page render failed", "path", c.Path(), "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// weatherQuery holds query parameters of the /weather endpoint.
type weatherQuery struct {
	City string `validate:"required"`
}

func parseWeatherQuery(c *fiber.Ctx) (weatherQuery, error) {
	q := weatherQuery{City: strings.TrimSpace(c.Query("city"))}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// pageQuery holds the page request parameters.
type pageQuery struct {
	City   string
	Date   string
	Action string `validate:"omitempty,oneof=info dismiss"`
	Submit bool
}

func parsePageQuery(c *fiber.Ctx) (pageQuery, error) {
	q := pageQuery{
		City:   c.Query("city"),
		Date:   strings.TrimSpace(c.Query("date")),
		Action: c.Query("action"),
		Submit: c.QueryBool("submit"),
	}
	if err := validate.Struct(q); err != nil {
		return q, fmt.Errorf("unknown page action %q", q.Action)
	}
	return q, nil
}

func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if id, ok := c.Locals(requestIDLocal).(string); ok && id != "" {
		return client.WithRequestID(ctx, id)
	}
	if id := c.Get(client.RequestIDHeader); id != "" {
		return client.WithRequestID(ctx, id)
	}
	return ctx
}
