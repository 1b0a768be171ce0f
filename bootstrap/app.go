package bootstrap

import (
	"pipeline_monitor/config"
	"pipeline_monitor/pkg/logging"
)

type App struct {
	Cfg            *config.Config
	Infrastructure *Infrastructure
	Repositories   *Repositories
	Services       *Services
	GrpcServices   *GrpcServices
	Handlers       *Handlers
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Cfg: cfg}
	infra, err := NewInfrastructure(cfg)
	if err != nil {
		logging.Logger.Error("fail NewInfrastructure", "error", err)
		return nil, err
	}
	app.Infrastructure = infra

	// repos, only when reading straight from postgres
	if infra.DB != nil {
		app.Repositories = NewRepositories(infra.DB)
	}

	services, err := NewServices(cfg, app.Repositories, infra)
	if err != nil {
		logging.Logger.Error("fail NewServices", "error", err)
		_ = infra.Shutdown()
		return nil, err
	}
	app.Services = services

	app.Handlers = NewHandlers(services, infra)

	grpcServices, err := NewGrpcServices(cfg)
	if err != nil {
		logging.Logger.Error("fail NewGrpcServices", "error", err)
		_ = infra.Shutdown()
		return nil, err
	}
	app.GrpcServices = grpcServices

	return app, nil
}

// Shutdown marks the app not serving, then stops the watchers so no poll
// runs against closed infra.
func (a *App) Shutdown() error {
	if a == nil {
		return nil
	}
	if a.GrpcServices != nil {
		a.GrpcServices.Drain()
	}
	if a.Services != nil {
		if err := a.Services.Shutdown(); err != nil {
			return err
		}
	}
	if a.GrpcServices != nil {
		if err := a.GrpcServices.Shutdown(); err != nil {
			return err
		}
	}
	if a.Infrastructure != nil {
		if err := a.Infrastructure.Shutdown(); err != nil {
			return err
		}
	}
	return nil
}
