package services

import (
	"context"
	"pipeline_monitor/models"
)

// EventSource fetches the raw facts about a process. The REST client and
// the postgres repositories both implement it.
type EventSource interface {
	GetProcess(ctx context.Context, id string) (*models.Process, error)
	GetEvents(ctx context.Context, processID string) ([]models.ProcessEvent, error)
	GetPipeline(ctx context.Context, id string) (*models.Pipeline, error)
	GetDocuments(ctx context.Context, processID string) ([]models.Document, error)
}

// DocumentLister lists input documents in object storage.
type DocumentLister interface {
	ListDocumentNames(ctx context.Context, location, extension string) ([]string, error)
}
