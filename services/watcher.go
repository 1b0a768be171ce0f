package services

import (
	"context"
	"errors"
	"pipeline_monitor/models"
	"pipeline_monitor/pkg/logging"
	"pipeline_monitor/pkg/monitor"
	"pipeline_monitor/platform/events"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Watcher polls watched processes while they run and publishes their
// progress. One poll loop serves all subscribers of a process.
type Watcher struct {
	monitor   *MonitorService
	publisher events.Publisher
	interval  time.Duration

	mu      sync.Mutex
	watches map[string]*watch
	ctx     context.Context
	cancel  context.CancelFunc
	group   errgroup.Group
}

type watch struct {
	refs   int
	cancel context.CancelFunc
}

func NewWatcher(monitor *MonitorService, publisher events.Publisher, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		monitor:   monitor,
		publisher: publisher,
		interval:  interval,
		watches:   make(map[string]*watch),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Watch starts polling processID unless it is already watched. The returned
// release must be called once the subscriber leaves.
func (w *Watcher) Watch(processID string) (release func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	wt, ok := w.watches[processID]
	if !ok {
		ctx, cancel := context.WithCancel(w.ctx)
		wt = &watch{cancel: cancel}
		w.watches[processID] = wt
		w.group.Go(func() error {
			w.poll(ctx, processID, wt)
			return nil
		})
		logging.Logger.Info("watching process", "processID", processID)
	}
	wt.refs++

	var once sync.Once
	return func() {
		once.Do(func() { w.release(processID, wt) })
	}
}

func (w *Watcher) release(processID string, wt *watch) {
	w.mu.Lock()
	defer w.mu.Unlock()

	wt.refs--
	if wt.refs > 0 {
		return
	}
	wt.cancel()
	if w.watches[processID] == wt {
		delete(w.watches, processID)
	}
}

func (w *Watcher) Watching(processID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.watches[processID]
	return ok
}

func (w *Watcher) poll(ctx context.Context, processID string, wt *watch) {
	defer func() {
		w.mu.Lock()
		if w.watches[processID] == wt {
			delete(w.watches, processID)
		}
		w.mu.Unlock()
		logging.Logger.Info("stopped watching process", "processID", processID)
	}()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if done := w.tick(ctx, processID); done {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// tick refreshes and publishes one update; it reports whether polling
// should stop.
func (w *Watcher) tick(ctx context.Context, processID string) bool {
	view, err := w.monitor.Refresh(ctx, processID)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		if errors.Is(err, models.ErrProcessNotFound) {
			w.publish(&models.ProgressEvent{Type: models.EventProcessFailed, ProcessID: processID, Message: err.Error()})
			return true
		}
		logging.Logger.Warn("fail refreshing process", "processID", processID, "error", err)
		return false
	}

	progress := view.Progress
	w.publish(&models.ProgressEvent{Type: models.EventProgressUpdated, ProcessID: processID, Progress: &progress})
	if !progress.Status.Ended() {
		return false
	}

	final := &models.ProgressEvent{Type: models.EventProcessFinished, ProcessID: processID, Progress: &progress}
	if progress.Status == monitor.StatusFailed || progress.Status == monitor.StatusCancelled {
		final.Type = models.EventProcessFailed
	}
	if view.Process != nil && view.Process.Error != nil {
		final.Message = *view.Process.Error
	}
	w.publish(final)
	return true
}

func (w *Watcher) publish(event *models.ProgressEvent) {
	if err := w.publisher.PublishProgressEvent(event); err != nil {
		logging.Logger.Error("fail publishing progress", "processID", event.ProcessID, "error", err)
	}
}

// Shutdown stops every poll loop and waits for them to return.
func (w *Watcher) Shutdown() error {
	w.cancel()
	return w.group.Wait()
}
