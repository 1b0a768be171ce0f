package bootstrap

import (
	"pipeline_monitor/platform/database"
	"pipeline_monitor/repository"
)

type Repositories struct {
	ProcessRepository  repository.ProcessRepository
	EventRepository    repository.EventRepository
	PipelineRepository repository.PipelineRepository
	DocumentRepository repository.DocumentRepository
}

func NewRepositories(db *database.DB) *Repositories {
	sqlDB := db.GetDatabase()
	return &Repositories{
		ProcessRepository:  repository.NewProcessRepository(sqlDB),
		EventRepository:    repository.NewEventRepository(sqlDB),
		PipelineRepository: repository.NewPipelineRepository(sqlDB),
		DocumentRepository: repository.NewDocumentRepository(sqlDB),
	}
}
