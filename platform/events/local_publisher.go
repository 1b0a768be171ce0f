package events

import (
	"context"
	"pipeline_monitor/models"
	"pipeline_monitor/pkg/logging"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalPublisher is used when no redis is configured.
type LocalPublisher struct {
	mu          sync.RWMutex
	subscribers map[string]chan *models.ProgressEvent
}

func NewLocalPublisher() *LocalPublisher {
	return &LocalPublisher{subscribers: make(map[string]chan *models.ProgressEvent)}
}

// PublishProgressEvent never blocks; a subscriber whose buffer is full
// misses the event.
func (p *LocalPublisher) PublishProgressEvent(event *models.ProgressEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	for id, ch := range p.subscribers {
		select {
		case ch <- event:
		default:
			logging.Logger.Warn("dropping progress event for slow subscriber", "subscriber", id, "processID", event.ProcessID)
		}
	}
	return nil
}

func (p *LocalPublisher) SubscribeProgressEvents(ctx context.Context) (<-chan *models.ProgressEvent, error) {
	id := uuid.NewString()
	ch := make(chan *models.ProgressEvent, subscriberBuffer)

	p.mu.Lock()
	p.subscribers[id] = ch
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		delete(p.subscribers, id)
		close(ch)
		p.mu.Unlock()
	}()
	return ch, nil
}

func (p *LocalPublisher) SubscriberCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscribers)
}
