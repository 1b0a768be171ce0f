package services

import (
	"context"
	"pipeline_monitor/models"
	"pipeline_monitor/repository"
)

// RepositorySource reads processes straight from the backend's database.
type RepositorySource struct {
	processRepo  repository.ProcessRepository
	eventRepo    repository.EventRepository
	pipelineRepo repository.PipelineRepository
	documentRepo repository.DocumentRepository
}

func NewRepositorySource(
	processRepo repository.ProcessRepository,
	eventRepo repository.EventRepository,
	pipelineRepo repository.PipelineRepository,
	documentRepo repository.DocumentRepository,
) *RepositorySource {
	return &RepositorySource{
		processRepo:  processRepo,
		eventRepo:    eventRepo,
		pipelineRepo: pipelineRepo,
		documentRepo: documentRepo,
	}
}

func (s *RepositorySource) GetProcess(ctx context.Context, id string) (*models.Process, error) {
	return s.processRepo.GetByID(ctx, id)
}

func (s *RepositorySource) GetEvents(ctx context.Context, processID string) ([]models.ProcessEvent, error) {
	return s.eventRepo.GetByProcessID(ctx, processID)
}

func (s *RepositorySource) GetPipeline(ctx context.Context, id string) (*models.Pipeline, error) {
	return s.pipelineRepo.GetByID(ctx, id)
}

func (s *RepositorySource) GetDocuments(ctx context.Context, processID string) ([]models.Document, error) {
	return s.documentRepo.GetByProcessID(ctx, processID)
}
