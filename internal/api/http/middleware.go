package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/thurmanmarka/solarpos/internal/logging"
)

// requestLogger tags each request with an X-Request-ID (kept from the
// client when present) and logs one line per request.
func requestLogger(l logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, id := logging.WithRequestID(c.UserContext(), c.Get(fiber.HeaderXRequestID))
		c.SetUserContext(ctx)
		c.Set(fiber.HeaderXRequestID, id)

		start := time.Now()
		err := c.Next()

		fields := []logging.Field{
			logging.String("method", c.Method()),
			logging.String("path", c.Path()),
			logging.Int("status", responseStatus(c, err)),
			logging.String("duration", time.Since(start).String()),
		}
		if err != nil {
			fields = append(fields, logging.Err(err))
		}
		l.Info(ctx, "http request", fields...)
		return err
	}
}

// responseStatus is the status the client will see. The error handler has
// not run yet when the middleware logs, so a returned error decides it.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
