package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/example/mangal/internal/apperrors"
	"github.com/example/mangal/internal/config"
)

// ErrorHandler maps classified errors to status codes and JSON bodies.
// Server errors return a generic message in production; non-production
// responses carry the detail for debugging.
func ErrorHandler(cfg *config.Config, log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal server error"

		if appErr, ok := apperrors.As(err); ok {
			status = appErr.HTTPStatus()
			message = appErr.Message
		} else {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
				message = fiberErr.Message
			}
		}

		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Int("status", status).Str("path", c.Path()).Msg("request failed")
			if cfg.Production() {
				message = "internal server error"
			}
		}

		body := fiber.Map{"error": message}
		if status >= fiber.StatusInternalServerError && !cfg.Production() {
			body["message"] = err.Error()
		}

		return c.Status(status).JSON(body)
	}
}
