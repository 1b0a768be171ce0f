package servers

import (
	"context"
	"fmt"
	"net"
	"pipeline_monitor/pkg/logging"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// MonitorServiceName is the service name reported to health probes.
const MonitorServiceName = "pipeline_monitor.Monitor"

// HealthService serves the standard gRPC health protocol. It reports
// SERVING once started and NOT_SERVING once the app begins shutting down.
type HealthService struct {
	port     string
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
}

func NewHealthService(port string) *HealthService {
	return &HealthService{port: port, health: health.NewServer()}
}

func (s *HealthService) Start() error {
	lis, err := net.Listen("tcp", ":"+s.port)
	if err != nil {
		logging.Logger.Error("fail NewHealthService", "error", err)
		return err
	}
	s.listener = lis
	s.server = grpc.NewServer()
	healthpb.RegisterHealthServer(s.server, s.health)
	s.SetServing(true)
	logging.Logger.Info("start grpc health server", "addr", lis.Addr().String())
	go func() {
		if err := s.server.Serve(lis); err != nil {
			logging.Logger.Error("fail grpc server", "error", err)
		}
	}()
	return nil
}

func (s *HealthService) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(MonitorServiceName, status)
}

// Serving reports the status of the monitor service.
func (s *HealthService) Serving() bool {
	resp, err := s.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: MonitorServiceName})
	return err == nil && resp.Status == healthpb.HealthCheckResponse_SERVING
}

func (s *HealthService) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *HealthService) Stop() error {
	if s.server == nil {
		return fmt.Errorf("grpc health server not started")
	}
	s.health.Shutdown()
	s.server.GracefulStop()
	logging.Logger.Info("grpc health server stopped")
	return nil
}
