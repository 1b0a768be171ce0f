package bootstrap

import (
	"fmt"
	"pipeline_monitor/config"
	"pipeline_monitor/platform/duui"
	"pipeline_monitor/services"
)

const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

type Services struct {
	MonitorService *services.MonitorService
	Watcher        *services.Watcher
}

func NewServices(cfg *config.Config, repos *Repositories, infra *Infrastructure) (*Services, error) {
	source, err := newEventSource(cfg, repos)
	if err != nil {
		return nil, err
	}

	var lister services.DocumentLister
	if infra.Storage != nil {
		lister = infra.Storage
	}

	monitorService := services.NewMonitorService(cfg, source, lister, infra.Cache)
	return &Services{
		MonitorService: monitorService,
		Watcher:        services.NewWatcher(monitorService, infra.EventPublisher, cfg.PollInterval),
	}, nil
}

func newEventSource(cfg *config.Config, repos *Repositories) (services.EventSource, error) {
	switch cfg.SourceType {
	case SourceHTTP:
		return duui.NewClient(cfg)
	case SourcePostgres:
		if repos == nil {
			return nil, fmt.Errorf("postgres source without database")
		}
		return services.NewRepositorySource(
			repos.ProcessRepository,
			repos.EventRepository,
			repos.PipelineRepository,
			repos.DocumentRepository,
		), nil
	default:
		return nil, fmt.Errorf("unsupported source type %q", cfg.SourceType)
	}
}

func (s *Services) Shutdown() error {
	if s.Watcher != nil {
		return s.Watcher.Shutdown()
	}
	return nil
}
