package repository

import (
	"context"
	"pipeline_monitor/models"

	"gorm.io/gorm"
)

type eventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) GetByProcessID(ctx context.Context, processID string) ([]models.ProcessEvent, error) {
	var events []models.ProcessEvent
	err := r.DB.WithContext(ctx).
		Where("process_id = ?", processID).
		Order("timestamp ASC").
		Order("id ASC").
		Find(&events).Error
	return events, err
}
