package http_server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger logs one line per request, at warn for 4xx and error for 5xx.
func NewLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()
		err := c.Next()

		msg := "HTTP Request"
		code := statusCode(c, err)
		if err != nil {
			msg = err.Error()
		}

		requestLogger := log.With().
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", clientIP(c)).
			Dur("latency", time.Since(startTime)).
			Str("user-agent", c.Get(fiber.HeaderUserAgent)).
			Logger()

		requestLogger.WithLevel(levelFor(code)).Msg(msg)

		return err
	}
}

func statusCode(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}

	var fiberError *fiber.Error
	if errors.As(err, &fiberError) {
		return fiberError.Code
	}

	return fiber.StatusInternalServerError
}

func clientIP(c *fiber.Ctx) string {
	if forwarded := c.IPs(); len(forwarded) > 0 {
		return forwarded[0]
	}

	return c.IP()
}

func levelFor(code int) zerolog.Level {
	switch {
	case code >= fiber.StatusInternalServerError:
		return zerolog.ErrorLevel
	case code >= fiber.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
