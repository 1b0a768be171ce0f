package repository

import (
	"context"
	"pipeline_monitor/models"

	"gorm.io/gorm"
)

type documentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{DB: db}
}

func (r *documentRepository) GetByProcessID(ctx context.Context, processID string) ([]models.Document, error) {
	var docs []models.Document
	err := r.DB.WithContext(ctx).
		Where("process_id = ?", processID).
		Order("name ASC").
		Find(&docs).Error
	return docs, err
}
