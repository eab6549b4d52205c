package grpchealth

import (
	"context"
	"fmt"
	"net"
	"time"

	"fulfillment/pkg/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

const (
	KeepaliveTime    = 5 * time.Minute
	KeepaliveTimeout = 3 * time.Second

	// ServiceName имя сервиса для проверки конкретной службы, "" означает весь процесс
	ServiceName = "fulfillment"
)

// Server стандартный grpc.health.v1 поверх отдельного порта.
type Server struct {
	log    logger.Logger
	grpc   *grpc.Server
	health *health.Server
}

func New(log logger.Logger) *Server {
	grpcServer := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    KeepaliveTime,
			Timeout: KeepaliveTimeout,
		}),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	s := &Server{
		log: log.With(
			logger.NewField("component", "grpc-health"),
		),
		grpc:   grpcServer,
		health: healthServer,
	}
	s.SetServing(false)
	return s
}

// SetServing переключает статус процесса и службы fulfillment.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve блокирует до остановки через Stop или ошибки listener.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("gRPC health server starting",
		logger.NewField("addr", lis.Addr().String()),
	)
	if err := s.grpc.Serve(lis); err != nil {
		return fmt.Errorf("grpc health server: %w", err)
	}
	return nil
}

// Stop помечает процесс NOT_SERVING и ждет завершения активных вызовов не дольше ctx.
func (s *Server) Stop(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.grpc.Stop()
	}
	s.log.Info("gRPC health server stopped")
}
