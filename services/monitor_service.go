package services

import (
	"context"
	"fmt"
	"pipeline_monitor/config"
	"pipeline_monitor/models"
	"pipeline_monitor/pkg/logging"
	"pipeline_monitor/pkg/monitor"
	"pipeline_monitor/platform/cache"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	snapshotKeyPrefix = "snapshot:"
	statusFilterAny   = "any"
	providerMinio     = "minio"
)

// Snapshot is everything fetched for one process at one point in time.
type Snapshot struct {
	Process       *models.Process   `json:"process"`
	Stages        []string          `json:"stages"`
	Events        []monitor.Event   `json:"events"`
	Documents     []models.Document `json:"documents"`
	DocumentNames []string          `json:"document_names"`
}

func (s *Snapshot) run() monitor.Run {
	run := s.Process.Run()
	run.DocumentNames = s.DocumentNames
	return run
}

type MonitorService struct {
	source       EventSource
	lister       DocumentLister
	snapshots    *cache.TypedCache[Snapshot]
	opts         monitor.Options
	activeTTL    time.Duration
	terminalTTL  time.Duration
	fetchTimeout time.Duration
	now          func() int64
}

// NewMonitorService wires the inference core to a source. lister may be nil.
func NewMonitorService(cfg *config.Config, source EventSource, lister DocumentLister, cacheService cache.CacheService) *MonitorService {
	return &MonitorService{
		source:       source,
		lister:       lister,
		snapshots:    cache.NewTypedCache[Snapshot](cacheService),
		opts:         monitor.Options{TerminalPolicy: ParseTerminalPolicy(cfg.TerminalPolicy)},
		activeTTL:    cfg.ActiveTTL,
		terminalTTL:  cfg.TerminalTTL,
		fetchTimeout: cfg.FetchTimeout,
		now:          func() int64 { return time.Now().UnixMilli() },
	}
}

func ParseTerminalPolicy(s string) monitor.TerminalPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "own", "own_evidence", "evidence":
		return monitor.OwnEvidenceOnly
	default:
		return monitor.InheritRunStatus
	}
}

// Snapshot returns the cached snapshot of a process or fetches it. Callers
// asking for the same process concurrently share one fetch.
func (s *MonitorService) Snapshot(ctx context.Context, processID string) (Snapshot, error) {
	return s.snapshots.GetOrLoad(snapshotKeyPrefix+processID, s.snapshotTTL, func() (Snapshot, error) {
		return s.fetch(ctx, processID)
	})
}

// Refresh drops the cached snapshot and fetches a new one.
func (s *MonitorService) Refresh(ctx context.Context, processID string) (*models.ProcessView, error) {
	if err := s.snapshots.Delete(snapshotKeyPrefix + processID); err != nil {
		logging.Logger.Warn("fail dropping snapshot", "processID", processID, "error", err)
	}
	return s.ProcessView(ctx, processID)
}

func (s *MonitorService) snapshotTTL(snap Snapshot) time.Duration {
	status := monitor.InferRunStatus(monitor.NewEventLog(snap.Events), monitor.ParseStatus(snap.Process.Status))
	if status.Ended() {
		return s.terminalTTL
	}
	return s.activeTTL
}

func (s *MonitorService) fetch(ctx context.Context, processID string) (Snapshot, error) {
	// the fetch is shared by every waiting caller, so one caller going away
	// must not cancel it
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
	defer cancel()

	process, err := s.source.GetProcess(ctx, processID)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Process: process}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := s.source.GetEvents(gctx, processID)
		if err != nil {
			return fmt.Errorf("fetch events: %w", err)
		}
		snap.Events = models.ToMonitorEvents(events)
		return nil
	})
	g.Go(func() error {
		pipeline, err := s.source.GetPipeline(gctx, process.PipelineID)
		if err != nil {
			return fmt.Errorf("fetch pipeline %s: %w", process.PipelineID, err)
		}
		snap.Stages = pipeline.StageNames()
		return nil
	})
	g.Go(func() error {
		docs, err := s.source.GetDocuments(gctx, processID)
		if err != nil {
			return fmt.Errorf("fetch documents: %w", err)
		}
		snap.Documents = docs
		return nil
	})
	var listed []string
	if len(process.DocumentNames) == 0 && s.lister != nil && strings.EqualFold(process.Input.Provider, providerMinio) {
		g.Go(func() error {
			names, err := s.lister.ListDocumentNames(gctx, process.Input.Path, process.Input.FileExtension)
			if err != nil {
				// the documents endpoint may still know the names
				logging.Logger.Warn("fail listing input documents", "processID", processID, "error", err)
				return nil
			}
			listed = names
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logging.Logger.Error("fail fetching snapshot", "processID", processID, "error", err)
		return Snapshot{}, err
	}

	snap.DocumentNames = documentNames(process, snap.Documents, listed)
	logging.Logger.Debug("fetched snapshot",
		"processID", processID,
		"events", len(snap.Events),
		"stages", len(snap.Stages),
		"documents", len(snap.DocumentNames),
	)
	return snap, nil
}

// documentNames prefers the names recorded on the process, then the stored
// documents, then a bucket listing.
func documentNames(process *models.Process, docs []models.Document, listed []string) []string {
	if len(process.DocumentNames) > 0 {
		return append([]string{}, process.DocumentNames...)
	}
	if len(docs) > 0 {
		names := make([]string, 0, len(docs))
		for _, d := range docs {
			if d.Path != "" {
				names = append(names, d.Path)
			} else {
				names = append(names, d.Name)
			}
		}
		return names
	}
	return listed
}

func (s *MonitorService) ProcessView(ctx context.Context, processID string) (*models.ProcessView, error) {
	snap, err := s.Snapshot(ctx, processID)
	if err != nil {
		return nil, err
	}
	progress := monitor.ComputeProcessProgress(monitor.NewEventLog(snap.Events), snap.Stages, snap.run(), s.opts)
	return &models.ProcessView{
		Process:  snap.Process,
		Stages:   snap.Stages,
		Progress: progress,
		Active:   progress.Status.Active(),
	}, nil
}

// Documents lists per-document progress filtered by status ("" or "Any"
// keeps all) and a case-insensitive substring of the document name.
func (s *MonitorService) Documents(ctx context.Context, processID string, query models.DocumentQuery) ([]models.DocumentView, error) {
	want, filterStatus, err := parseStatusFilter(query.Status)
	if err != nil {
		return nil, err
	}
	snap, err := s.Snapshot(ctx, processID)
	if err != nil {
		return nil, err
	}

	text := strings.ToLower(strings.TrimSpace(query.Text))
	progress := monitor.ComputeProcessProgress(monitor.NewEventLog(snap.Events), snap.Stages, snap.run(), s.opts)
	stored := storedByKey(snap.Documents)

	views := make([]models.DocumentView, 0, len(progress.Documents))
	for i, name := range snap.DocumentNames {
		dp := progress.Documents[i]
		if filterStatus && dp.Status != want {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(name), text) {
			continue
		}
		views = append(views, documentView(name, stored[dp.Key], dp, nil))
	}
	return views, nil
}

// Document returns one document with its timeline. key is the final path
// segment of the document name.
func (s *MonitorService) Document(ctx context.Context, processID, key string) (*models.DocumentView, error) {
	snap, err := s.Snapshot(ctx, processID)
	if err != nil {
		return nil, err
	}
	name, ok := findDocument(snap.DocumentNames, key)
	if !ok {
		return nil, models.ErrDocumentNotFound
	}

	log := monitor.NewEventLog(snap.Events)
	run := snap.run()
	stored := storedByKey(snap.Documents)[monitor.DocumentKey(name)]

	dp := monitor.ComputeDocumentProgress(log, snap.Stages, run, monitor.DocumentKey(name), s.opts)
	timeline := monitor.BuildTimeline(log, snap.Stages, run, timelineDocument(name, stored), s.now())
	view := documentView(name, stored, dp, timeline)
	return &view, nil
}

func (s *MonitorService) Timeline(ctx context.Context, processID, key string) ([]monitor.TimelineSegment, error) {
	view, err := s.Document(ctx, processID, key)
	if err != nil {
		return nil, err
	}
	return view.Timeline, nil
}

func parseStatusFilter(raw string) (monitor.Status, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, statusFilterAny) {
		return monitor.StatusUnknown, false, nil
	}
	status := monitor.ParseStatus(raw)
	if status == monitor.StatusUnknown && !strings.EqualFold(raw, string(monitor.StatusUnknown)) {
		return status, false, fmt.Errorf("%w: %q", models.ErrInvalidStatus, raw)
	}
	return status, true, nil
}

func storedByKey(docs []models.Document) map[string]*models.Document {
	out := make(map[string]*models.Document, len(docs))
	for i := range docs {
		d := &docs[i]
		key := d.Monitor().Key()
		if _, exists := out[key]; !exists {
			out[key] = d
		}
	}
	return out
}

func findDocument(names []string, key string) (string, bool) {
	key = monitor.DocumentKey(key)
	for _, name := range names {
		if monitor.DocumentKey(name) == key {
			return name, true
		}
	}
	return "", false
}

func timelineDocument(name string, stored *models.Document) monitor.Document {
	if stored != nil {
		return stored.Monitor()
	}
	return monitor.Document{Name: monitor.DocumentKey(name), Path: name}
}

func documentView(name string, stored *models.Document, dp monitor.DocumentProgress, timeline []monitor.TimelineSegment) models.DocumentView {
	view := models.DocumentView{
		Name:     monitor.DocumentKey(name),
		Path:     name,
		Progress: dp,
		Timeline: timeline,
	}
	if stored != nil {
		view.Size = stored.Size
	}
	return view
}
