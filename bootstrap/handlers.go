package bootstrap

import "pipeline_monitor/handlers"

type Handlers struct {
	ProcessHandler *handlers.ProcessHandler
	WSHandler      *handlers.WSHandler
}

func NewHandlers(services *Services, infra *Infrastructure) *Handlers {
	return &Handlers{
		ProcessHandler: handlers.NewProcessHandler(services.MonitorService),
		WSHandler:      handlers.NewWSHandler(infra.EventPublisher, services.MonitorService, services.Watcher),
	}
}
