package handlers

import (
	"context"
	"pipeline_monitor/pkg/logging"
	"pipeline_monitor/platform/events"
	"pipeline_monitor/services"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type WSHandler struct {
	eventPublisher events.Publisher
	monitorService *services.MonitorService
	watcher        *services.Watcher
}

func NewWSHandler(eventPublisher events.Publisher, monitorService *services.MonitorService, watcher *services.Watcher) *WSHandler {
	return &WSHandler{
		eventPublisher: eventPublisher,
		monitorService: monitorService,
		watcher:        watcher,
	}
}

func (h *WSHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "Not a websocket request"})
}

func (h *WSHandler) HandleProcessEvents(c *websocket.Conn) {
	processID := c.Params("id")
	subscriptionID := uuid.NewString()

	logging.Logger.Info("WebSocket connected",
		"processID", processID,
		"subscriptionID", subscriptionID,
	)

	// cancelled when the client goes away
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventChan, err := h.eventPublisher.SubscribeProgressEvents(ctx)
	if err != nil {
		logging.Logger.Error("Failed to subscribe to events", "error", err)
		_ = c.WriteJSON(fiber.Map{"error": "Failed to subscribe"})
		return
	}

	view, err := h.monitorService.ProcessView(ctx, processID)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": toFiberError(err).Error()})
		return
	}
	if err := c.WriteJSON(fiber.Map{
		"type":            "connected",
		"process_id":      processID,
		"subscription_id": subscriptionID,
		"progress":        view.Progress,
	}); err != nil {
		return
	}

	if view.Active {
		release := h.watcher.Watch(processID)
		defer release()
	}

	// the read loop notices the client closing the socket
	go func() {
		defer cancel()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event.ProcessID != processID {
				continue
			}
			if err := c.WriteJSON(event); err != nil {
				logging.Logger.Error("Failed to send WebSocket message", "error", err)
				return
			}
			logging.Logger.Debug("Event sent to client",
				"type", event.Type,
				"processID", event.ProcessID,
				"subscriptionID", subscriptionID,
			)
		case <-ctx.Done():
			logging.Logger.Info("WebSocket disconnected", "processID", processID, "subscriptionID", subscriptionID)
			return
		}
	}
}
