package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"pipeline_monitor/config"
	"pipeline_monitor/middleware"
	"pipeline_monitor/models"
	"pipeline_monitor/pkg/monitor"
	"pipeline_monitor/platform/cache"
	"pipeline_monitor/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{}

func (stubSource) GetProcess(_ context.Context, id string) (*models.Process, error) {
	names := []string{"in/a.txt", "in/b c.txt"}
	switch id {
	case "p1":
		return &models.Process{ID: "p1", PipelineID: "pl", Status: "Running", DocumentNames: names}, nil
	case "done":
		finished := int64(50)
		return &models.Process{ID: "done", PipelineID: "pl", Status: "Completed", FinishedAt: &finished, DocumentNames: names}, nil
	default:
		return nil, models.ErrProcessNotFound
	}
}

func (stubSource) GetEvents(_ context.Context, _ string) ([]models.ProcessEvent, error) {
	return []models.ProcessEvent{
		{Timestamp: 10, Event: models.EventBody{Message: "in/a.txt is being processed by component A"}},
		{Timestamp: 20, Event: models.EventBody{Message: "in/a.txt has been processed by component A"}},
		{Timestamp: 21, Event: models.EventBody{Message: "in/a.txt has been processed after 11 ms"}},
		{Timestamp: 12, Event: models.EventBody{Message: "in/b c.txt is being processed by component A"}},
	}, nil
}

func (stubSource) GetPipeline(_ context.Context, _ string) (*models.Pipeline, error) {
	return &models.Pipeline{ID: "pl", Stages: []string{"A"}}, nil
}

func (stubSource) GetDocuments(_ context.Context, _ string) ([]models.Document, error) {
	return nil, nil
}

func newTestMonitorService() *services.MonitorService {
	cfg := &config.Config{ActiveTTL: time.Minute, TerminalTTL: time.Hour, FetchTimeout: time.Second}
	return services.NewMonitorService(cfg, stubSource{}, nil, cache.InitL1Cache())
}

func newTestApp() *fiber.App {
	svc := newTestMonitorService()

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	h := NewProcessHandler(svc)
	api := app.Group("/api")
	api.Get("/statuses", h.ListStatuses)
	api.Get("/processes/:id", h.GetProcess)
	api.Get("/processes/:id/documents", h.ListDocuments)
	api.Get("/processes/:id/documents/:key", h.GetDocument)
	api.Get("/processes/:id/documents/:key/timeline", h.GetTimeline)
	return app
}

func get(t *testing.T, app *fiber.App, target string, out interface{}) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestProcessHandler_GetProcess(t *testing.T) {
	var view models.ProcessView

	status := get(t, newTestApp(), "/api/processes/p1", &view)

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, view.Active)
	assert.Equal(t, monitor.StatusRunning, view.Progress.Status)
	assert.Equal(t, 50, view.Progress.Percent)
}

func TestProcessHandler_GetProcessNotFound(t *testing.T) {
	var body map[string]string

	status := get(t, newTestApp(), "/api/processes/nope", &body)

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "process not found", body["error"])
}

func TestProcessHandler_ListDocuments(t *testing.T) {
	var body struct {
		Documents []models.DocumentView `json:"documents"`
		Count     int                   `json:"count"`
	}

	status := get(t, newTestApp(), "/api/processes/p1/documents?status=running", &body)

	assert.Equal(t, fiber.StatusOK, status)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "b c.txt", body.Documents[0].Name)
	assert.Equal(t, "A", body.Documents[0].Progress.Stage)
}

func TestProcessHandler_ListDocumentsBadStatus(t *testing.T) {
	status := get(t, newTestApp(), "/api/processes/p1/documents?status=bogus", nil)

	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestProcessHandler_GetDocumentAndTimeline(t *testing.T) {
	app := newTestApp()

	var view models.DocumentView
	assert.Equal(t, fiber.StatusOK, get(t, app, "/api/processes/p1/documents/a.txt", &view))
	assert.True(t, view.Progress.IsFinished)

	var body struct {
		Timeline []monitor.TimelineSegment `json:"timeline"`
	}
	assert.Equal(t, fiber.StatusOK, get(t, app, "/api/processes/p1/documents/b%20c.txt/timeline", &body))
	require.Len(t, body.Timeline, 2)
	assert.Equal(t, "A (1)", body.Timeline[1].Label)
	assert.True(t, body.Timeline[1].Open)

	assert.Equal(t, fiber.StatusNotFound, get(t, app, "/api/processes/p1/documents/zzz.txt", nil))
}

func TestProcessHandler_ListStatuses(t *testing.T) {
	var body map[string][]string

	get(t, newTestApp(), "/api/statuses", &body)

	assert.Contains(t, body["process"], "Active")
	assert.Contains(t, body["document"], "Waiting")
	assert.NotContains(t, body["process"], "Waiting")
}
