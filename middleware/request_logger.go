package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// RequestLogger logs every request with method, path, status and latency.
func RequestLogger() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		event := log.Info()
		if err != nil || status >= fiber.StatusInternalServerError {
			event = log.Error().Err(err)
		}

		event.
			Str("method", ctx.Method()).
			Str("path", ctx.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", ctx.IP()).
			Msg("request")

		return err
	}
}
