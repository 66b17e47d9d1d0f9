package middleware

import (
	"errors"
	"log/slog"

	"github.com/ellavondegurechaff/deckvault/server/utils"
	"github.com/gofiber/fiber/v2"
)

// CustomErrorHandler keeps every error JSON-shaped, including the ones Fiber
// raises itself (bad routes, oversized bodies).
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= 500 {
		slog.Error("Unhandled error",
			slog.String("type", "http"),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}

	switch code {
	case fiber.StatusNotFound:
		return utils.SendNotFound(c, message)
	case fiber.StatusBadRequest:
		return utils.SendBadRequest(c, message, nil)
	default:
		return utils.SendError(c, code, "INTERNAL_SERVER_ERROR", message, nil)
	}
}

// SecurityHeaders sets the usual hardening headers on every response.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}
