package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"pipeline_monitor/config"
	"pipeline_monitor/models"
	"pipeline_monitor/platform/cache"
)

type fakeSource struct {
	mu        sync.Mutex
	process   *models.Process
	events    []models.ProcessEvent
	pipeline  *models.Pipeline
	documents []models.Document
	fetches   int32
}

func (f *fakeSource) GetProcess(_ context.Context, id string) (*models.Process, error) {
	atomic.AddInt32(&f.fetches, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.process == nil || f.process.ID != id {
		return nil, models.ErrProcessNotFound
	}
	p := *f.process
	return &p, nil
}

func (f *fakeSource) GetEvents(_ context.Context, _ string) ([]models.ProcessEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ProcessEvent{}, f.events...), nil
}

func (f *fakeSource) GetPipeline(_ context.Context, id string) (*models.Pipeline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pipeline == nil || f.pipeline.ID != id {
		return nil, models.ErrPipelineNotFound
	}
	p := *f.pipeline
	return &p, nil
}

func (f *fakeSource) GetDocuments(_ context.Context, _ string) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Document{}, f.documents...), nil
}

func (f *fakeSource) addEvents(events ...models.ProcessEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, events...)
}

func (f *fakeSource) setStatus(status string, finishedAt int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := *f.process
	p.Status = status
	p.FinishedAt = &finishedAt
	f.process = &p
}

type fakeLister struct {
	names    []string
	location string
}

func (l *fakeLister) ListDocumentNames(_ context.Context, location, _ string) ([]string, error) {
	l.location = location
	return l.names, nil
}

func event(ts int64, message string) models.ProcessEvent {
	return models.ProcessEvent{Timestamp: ts, Event: models.EventBody{Sender: "DOCUMENT", Message: message}}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		process: &models.Process{
			ID:            "p1",
			PipelineID:    "pl",
			Status:        "Active",
			StartedAt:     0,
			DocumentNames: []string{"in/a.txt", "in/b.txt", "in/c.txt"},
		},
		pipeline: &models.Pipeline{ID: "pl", Components: []models.Component{{Name: "A"}, {Name: "B"}}},
		events: []models.ProcessEvent{
			event(10, "in/a.txt is being processed by component A"),
			event(20, "in/a.txt has been processed by component A"),
			event(20, "in/a.txt is being processed by component B"),
			event(30, "in/a.txt has been processed by component B"),
			event(31, "in/a.txt has been processed after 21 ms"),
			event(15, "in/b.txt is being processed by component A"),
		},
		documents: []models.Document{{Name: "a.txt", Path: "in/a.txt", Size: 42, DurationWait: 5}},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		ActiveTTL:    time.Minute,
		TerminalTTL:  time.Hour,
		FetchTimeout: time.Second,
		PollInterval: 10 * time.Millisecond,
	}
}

func newTestService(source EventSource, lister DocumentLister) *MonitorService {
	s := NewMonitorService(testConfig(), source, lister, cache.InitL1Cache())
	s.now = func() int64 { return 100 }
	return s
}
