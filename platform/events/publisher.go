package events

import (
	"context"
	"pipeline_monitor/models"
)

const (
	ProgressEventChannel = "process:progress"
	subscriberBuffer     = 100
)

// Publisher fans progress events out to every subscriber. The redis
// implementation spans instances; the local one stays in process.
type Publisher interface {
	PublishProgressEvent(event *models.ProgressEvent) error
	SubscribeProgressEvents(ctx context.Context) (<-chan *models.ProgressEvent, error)
}
