package routes

import (
	"pipeline_monitor/handlers"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func SetupWebSocketRoutes(app *fiber.App, wsHandler *handlers.WSHandler) {
	ws := app.Group("/ws")

	ws.Use("/processes/:id", wsHandler.WebSocketUpgrade)
	ws.Get("/processes/:id", websocket.New(wsHandler.HandleProcessEvents))
}
