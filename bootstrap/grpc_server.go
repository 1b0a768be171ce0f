package bootstrap

import (
	"fmt"
	"pipeline_monitor/config"
	"pipeline_monitor/platform/grpc/servers"
)

type GrpcServices struct {
	HealthService *servers.HealthService
}

// NewGrpcServices starts the health server when GRPC_HEALTH_PORT is set.
func NewGrpcServices(cfg *config.Config) (*GrpcServices, error) {
	s := &GrpcServices{}
	if cfg.GrpcHealthPort == "" {
		return s, nil
	}
	s.HealthService = servers.NewHealthService(cfg.GrpcHealthPort)
	if err := s.HealthService.Start(); err != nil {
		return nil, fmt.Errorf("failed to start health service: %w", err)
	}
	return s, nil
}

// Drain tells health probes the app is going away.
func (s *GrpcServices) Drain() {
	if s.HealthService != nil {
		s.HealthService.SetServing(false)
	}
}

func (s *GrpcServices) Shutdown() error {
	if s.HealthService != nil {
		return s.HealthService.Stop()
	}
	return nil
}
