package middleware

import (
	"pipeline_monitor/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func CORS(allowOrigins string) fiber.Handler {
	logging.Logger.Info("CORS configured", "allowOrigins", allowOrigins)
	return cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	})
}
