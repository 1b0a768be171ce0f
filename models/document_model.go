package models

import "pipeline_monitor/pkg/monitor"

type Document struct {
	ID           string  `gorm:"column:oid;type:varchar(64);primaryKey" json:"oid"`
	ProcessID    string  `gorm:"column:process_id;type:varchar(64);index:idx_document_process" json:"process_id"`
	Name         string  `gorm:"column:name;type:varchar(512)" json:"name"`
	Path         string  `gorm:"column:path;type:text" json:"path"`
	Status       string  `gorm:"column:status;type:varchar(32)" json:"status"`
	Error        *string `gorm:"column:error;type:text" json:"error"`
	Size         int64   `gorm:"column:size;type:bigint" json:"size"`
	DurationWait int64   `gorm:"column:duration_wait;type:bigint" json:"duration_wait"`
	StartedAt    int64   `gorm:"column:started_at;type:bigint" json:"started_at"`
	FinishedAt   int64   `gorm:"column:finished_at;type:bigint" json:"finished_at"`
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) Monitor() monitor.Document {
	return monitor.Document{Name: d.Name, Path: d.Path, WaitDuration: d.DurationWait}
}

// DocumentView is the API representation of one document's inferred state.
type DocumentView struct {
	Name     string                    `json:"name"`
	Path     string                    `json:"path,omitempty"`
	Size     int64                     `json:"size,omitempty"`
	Progress monitor.DocumentProgress  `json:"progress"`
	Timeline []monitor.TimelineSegment `json:"timeline,omitempty"`
}

// ProcessView is the API representation of a run and its aggregate progress.
type ProcessView struct {
	Process  *Process                `json:"process"`
	Stages   []string                `json:"stages"`
	Progress monitor.ProcessProgress `json:"progress"`
	Active   bool                    `json:"active"`
}

type DocumentQuery struct {
	Status string `query:"status"`
	Text   string `query:"text"`
}
