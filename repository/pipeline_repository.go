package repository

import (
	"context"
	"pipeline_monitor/models"

	"gorm.io/gorm"
)

type pipelineRepository struct {
	DB *gorm.DB
}

func NewPipelineRepository(db *gorm.DB) PipelineRepository {
	return &pipelineRepository{DB: db}
}

func (r *pipelineRepository) GetByID(ctx context.Context, id string) (*models.Pipeline, error) {
	var pipeline models.Pipeline
	err := r.DB.WithContext(ctx).Where("oid = ?", id).First(&pipeline).Error
	if err != nil {
		return nil, notFound(err, models.ErrPipelineNotFound)
	}
	return &pipeline, nil
}
