package repository

import (
	"errors"
	"fmt"
	"testing"

	"pipeline_monitor/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(gorm.ErrRecordNotFound, models.ErrProcessNotFound), models.ErrProcessNotFound)
	assert.ErrorIs(t, notFound(fmt.Errorf("query: %w", gorm.ErrRecordNotFound), models.ErrPipelineNotFound), models.ErrPipelineNotFound)

	other := errors.New("connection refused")
	assert.Equal(t, other, notFound(other, models.ErrProcessNotFound))
}
