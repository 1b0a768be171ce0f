package repository

import (
	"context"
	"pipeline_monitor/models"
)

// The monitor never writes; these repositories read what the pipeline
// backend stores.

type ProcessRepository interface {
	GetByID(ctx context.Context, id string) (*models.Process, error)
}

type EventRepository interface {
	GetByProcessID(ctx context.Context, processID string) ([]models.ProcessEvent, error)
}

type PipelineRepository interface {
	GetByID(ctx context.Context, id string) (*models.Pipeline, error)
}

type DocumentRepository interface {
	GetByProcessID(ctx context.Context, processID string) ([]models.Document, error)
}
