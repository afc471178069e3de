// Package middleware provides the fiber middleware shared by every route.
package middleware

import (
	"log/slog"
	"time"

	"friendgraph/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// CorrelationIDHeader is echoed back and attached to every log line of the request.
const CorrelationIDHeader = "X-Correlation-ID"

// ContextMiddleware copies the request ID, trace ID and correlation ID from
// fiber locals and headers into the request context so the context-aware
// logger picks them up in the service and repository layers.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ctx = observability.WithRequestID(ctx, rid)
		}

		if tid, ok := c.Locals("traceID").(string); ok && tid != "" {
			ctx = observability.WithTraceID(ctx, tid)
		}

		if cid := c.Get(CorrelationIDHeader); cid != "" {
			ctx = observability.WithCorrelationID(ctx, cid)
			c.Set(CorrelationIDHeader, cid)
		}

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// StructuredLogger returns a Fiber middleware for logging requests using slog
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		latency := time.Since(start)

		fields := []any{
			slog.Int("status", status),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", latency),
			slog.String("user_agent", c.Get("User-Agent")),
		}

		switch {
		case err != nil:
			fields = append(fields, slog.String("error", err.Error()))
			observability.Logger.ErrorContext(c.UserContext(), "request failed", fields...)
		case status >= fiber.StatusInternalServerError:
			observability.Logger.WarnContext(c.UserContext(), "request processed", fields...)
		default:
			observability.Logger.InfoContext(c.UserContext(), "request processed", fields...)
		}

		return err
	}
}
