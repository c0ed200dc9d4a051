package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"resumatch/internal/config"
	"resumatch/internal/logger"
)

// Logger is a middleware that writes one access log line per HTTP request.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
//
// Server errors are logged at error level, client errors at warn.
func Logger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		// Use only the path segment (no query string)
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Msg("http_request")

		return err
	}
}

// LoggerWithWriter builds the access log on its own JSON logger writing to w.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logger.New(w, config.LogConfig{Level: "info", Format: "json"}, loc))
}
