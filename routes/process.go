package routes

import (
	"pipeline_monitor/handlers"

	"github.com/gofiber/fiber/v2"
)

func SetupProcessRoutes(app *fiber.App, processHandler *handlers.ProcessHandler) {
	api := app.Group("/api")

	api.Get("/statuses", processHandler.ListStatuses)

	processes := api.Group("/processes")
	processes.Get("/:id", processHandler.GetProcess)
	processes.Get("/:id/documents", processHandler.ListDocuments)
	processes.Get("/:id/documents/:key", processHandler.GetDocument)
	processes.Get("/:id/documents/:key/timeline", processHandler.GetTimeline)
}
