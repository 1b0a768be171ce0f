package models

import (
	"pipeline_monitor/pkg/monitor"

	"github.com/lib/pq"
)

// IOSettings describes where a process reads documents from.
type IOSettings struct {
	Provider      string `json:"provider"`
	Path          string `json:"path"`
	FileExtension string `json:"file_extension"`
}

type Process struct {
	ID            string         `gorm:"column:oid;type:varchar(64);primaryKey" json:"oid"`
	PipelineID    string         `gorm:"column:pipeline_id;type:varchar(64);index:idx_pipeline_id" json:"pipeline_id"`
	Status        string         `gorm:"column:status;type:varchar(32)" json:"status"`
	Error         *string        `gorm:"column:error;type:text" json:"error"`
	StartedAt     int64          `gorm:"column:started_at;type:bigint" json:"started_at"`
	FinishedAt    *int64         `gorm:"column:finished_at;type:bigint" json:"finished_at"`
	DocumentNames pq.StringArray `gorm:"column:document_names;type:text[]" json:"document_names"`
	IsFinished    bool           `gorm:"column:is_finished" json:"is_finished"`
	Input         IOSettings     `gorm:"embedded;embeddedPrefix:input_" json:"input"`
}

func (Process) TableName() string {
	return "processes"
}

// Run converts the stored record into the monitor's input.
func (p *Process) Run() monitor.Run {
	return monitor.Run{
		StartedAt:     p.StartedAt,
		FinishedAt:    p.FinishedAt,
		Status:        monitor.ParseStatus(p.Status),
		DocumentNames: append([]string{}, p.DocumentNames...),
	}
}
