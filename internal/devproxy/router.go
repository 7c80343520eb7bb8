// Package devproxy serves the frontend build and the API from one origin, so
// the client's default base of <origin>/api works during development.
package devproxy

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/quest_academy/pkg/logging"
	loggingmw "github.com/Skotchmaster/quest_academy/pkg/middleware/logging"
)

type Deps struct {
	BackendURL string
	// StaticDir is optional; without it only /api and health are served.
	StaticDir string
	Logger    *slog.Logger
}

func Register(e *echo.Echo, d *Deps) error {
	apiProxy, err := newProxy(d.BackendURL)
	if err != nil {
		return err
	}
	ready := readiness(d.BackendURL)

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := ready(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": err.Error()})
		}
		return c.NoContent(http.StatusOK)
	})

	l := d.Logger
	if l == nil {
		l = logging.Discard()
	}
	for _, m := range common(l) {
		e.Use(m)
	}

	e.Any("/api", apiProxy)
	e.Any("/api/*", apiProxy)

	if d.StaticDir != "" {
		e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
			Root:  d.StaticDir,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				p := c.Request().URL.Path
				return p == "/api" || strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/health/")
			},
		}))
	}
	return nil
}

func common(l *slog.Logger) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		echomw.Recover(),
		echomw.RequestID(),
		loggingmw.RequestLogger(l, loggingmw.WithSkipper(func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/health/")
		})),
		echomw.Secure(),
	}
}

// readiness reports whether the backend answers at all; any HTTP status
// counts as up.
func readiness(backend string) func(ctx context.Context) error {
	client := &http.Client{Timeout: 2 * time.Second}
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, backend, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		return resp.Body.Close()
	}
}
