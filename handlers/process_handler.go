package handlers

import (
	"errors"
	"net/url"
	"pipeline_monitor/models"
	"pipeline_monitor/pkg/monitor"
	"pipeline_monitor/services"

	"github.com/gofiber/fiber/v2"
)

type ProcessHandler struct {
	monitorService *services.MonitorService
}

func NewProcessHandler(monitorService *services.MonitorService) *ProcessHandler {
	return &ProcessHandler{monitorService: monitorService}
}

func (h *ProcessHandler) GetProcess(c *fiber.Ctx) error {
	view, err := h.monitorService.ProcessView(c.UserContext(), c.Params("id"))
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(view)
}

func (h *ProcessHandler) ListDocuments(c *fiber.Ctx) error {
	var query models.DocumentQuery
	if err := c.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	docs, err := h.monitorService.Documents(c.UserContext(), c.Params("id"), query)
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(fiber.Map{
		"documents": docs,
		"count":     len(docs),
	})
}

func (h *ProcessHandler) GetDocument(c *fiber.Ctx) error {
	view, err := h.monitorService.Document(c.UserContext(), c.Params("id"), documentKeyParam(c))
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(view)
}

func (h *ProcessHandler) GetTimeline(c *fiber.Ctx) error {
	timeline, err := h.monitorService.Timeline(c.UserContext(), c.Params("id"), documentKeyParam(c))
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(fiber.Map{"timeline": timeline})
}

func (h *ProcessHandler) ListStatuses(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"process":  monitor.ProcessStatuses(),
		"document": monitor.DocumentStatuses(),
	})
}

func documentKeyParam(c *fiber.Ctx) string {
	key := c.Params("key")
	if unescaped, err := url.PathUnescape(key); err == nil {
		return unescaped
	}
	return key
}

func toFiberError(err error) error {
	switch {
	case errors.Is(err, models.ErrProcessNotFound),
		errors.Is(err, models.ErrDocumentNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidStatus):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrPipelineNotFound):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load process")
	}
}
