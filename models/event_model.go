package models

import "pipeline_monitor/pkg/monitor"

type EventBody struct {
	Sender  string `gorm:"column:sender;type:varchar(64)" json:"sender"`
	Message string `gorm:"column:message;type:text" json:"message"`
}

// ProcessEvent is one log line as the backend stores it.
type ProcessEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	ProcessID string    `gorm:"column:process_id;type:varchar(64);index:idx_process_ts" json:"-"`
	Timestamp int64     `gorm:"column:timestamp;type:bigint;index:idx_process_ts" json:"timestamp"`
	Event     EventBody `gorm:"embedded" json:"event"`
}

func (ProcessEvent) TableName() string {
	return "events"
}

func ToMonitorEvents(events []ProcessEvent) []monitor.Event {
	out := make([]monitor.Event, len(events))
	for i, e := range events {
		out[i] = monitor.Event{
			Timestamp: e.Timestamp,
			Sender:    e.Event.Sender,
			Message:   e.Event.Message,
		}
	}
	return out
}

type ProgressEventType string

const (
	EventProgressUpdated ProgressEventType = "progress"
	EventProcessFinished ProgressEventType = "finished"
	EventProcessFailed   ProgressEventType = "failed"
)

// ProgressEvent is published whenever a watched process is recomputed.
type ProgressEvent struct {
	Type      ProgressEventType        `json:"type"`
	ProcessID string                   `json:"process_id"`
	Progress  *monitor.ProcessProgress `json:"progress,omitempty"`
	Message   string                   `json:"message,omitempty"`
	Timestamp int64                    `json:"timestamp"`
}
