package loggingmw

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/quest_academy/pkg/logging"
)

type Option func(*options)

type options struct {
	skip func(c echo.Context) bool
}

// WithSkipper leaves requests matching fn out of the log, e.g. health checks.
func WithSkipper(fn func(c echo.Context) bool) Option {
	return func(o *options) { o.skip = fn }
}

// RequestLogger logs one line per request. The request id is the client's
// X-Request-ID when it sent one, else the id echo's RequestID middleware
// generated. Bearer tokens are never logged, only whether one was sent.
func RequestLogger(base *slog.Logger, opts ...Option) echo.MiddlewareFunc {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if o.skip != nil && o.skip(c) {
				return next(c)
			}

			r := c.Request()
			rid := r.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			l := base.With(
				"method", r.Method,
				"path", c.Path(),
				"url", r.URL.Path,
				"remote_ip", c.RealIP(),
				"authenticated", r.Header.Get(echo.HeaderAuthorization) != "",
			)
			if rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}

			c.SetRequest(r.WithContext(logging.IntoContext(r.Context(), l)))

			start := time.Now()
			err := next(c)
			dur := time.Since(start)

			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}
			status := c.Response().Status

			switch {
			case err != nil && status >= 500:
				l.Error("request completed", "status", status, "duration_ms", dur.Milliseconds(), "error", errStr(err))
			case status >= 500:
				l.Error("request completed", "status", status, "duration_ms", dur.Milliseconds())
			case status >= 400:
				l.Warn("request completed", "status", status, "duration_ms", dur.Milliseconds(), "error", errStr(err))
			default:
				l.Info("request completed", "status", status, "duration_ms", dur.Milliseconds(), "bytes", c.Response().Size)
			}
			return nil
		}
	}
}

func errStr(err error) string {
	if err == nil {
		return ""
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return fmt.Sprintf("%v", he.Message)
	}
	return err.Error()
}
