package repository

import (
	"context"
	"errors"
	"pipeline_monitor/models"

	"gorm.io/gorm"
)

type processRepository struct {
	DB *gorm.DB
}

func NewProcessRepository(db *gorm.DB) ProcessRepository {
	return &processRepository{DB: db}
}

func (r *processRepository) GetByID(ctx context.Context, id string) (*models.Process, error) {
	var process models.Process
	err := r.DB.WithContext(ctx).Where("oid = ?", id).First(&process).Error
	if err != nil {
		return nil, notFound(err, models.ErrProcessNotFound)
	}
	return &process, nil
}

// notFound replaces gorm's record-not-found error with the domain sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
