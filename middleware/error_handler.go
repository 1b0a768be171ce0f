package middleware

import (
	"errors"
	"pipeline_monitor/pkg/logging"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error as {"error": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		logging.Logger.Error("request failed", "method", c.Method(), "path", c.Path(), "status", code, "error", err)
	}
	message := err.Error()
	if fe == nil {
		message = "Internal server error"
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
