package grpc

import (
	"context"
	"sync"

	"github.com/getsentry/sentry-go"
	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

var (
	grpcServerMetrics         *grpcprom.ServerMetrics
	registerServerMetricsOnce sync.Once
)

// NewGRPCServer creates a fully configured gRPC server with Prometheus metrics,
// error reporting, health checking, and reflection.
func NewGRPCServer(svc Services, opts Options) *grpc.Server {
	// Set up Prometheus gRPC server metrics once per process
	registerServerMetricsOnce.Do(func() {
		grpcServerMetrics = grpcprom.NewServerMetrics(
			grpcprom.WithServerHandlingTimeHistogram(),
		)
		prometheus.MustRegister(grpcServerMetrics)
	})

	srvMetrics := grpcServerMetrics

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(srvMetrics.UnaryServerInterceptor(), reportUnaryErrors),
		grpc.ChainStreamInterceptor(srvMetrics.StreamServerInterceptor(), reportStreamErrors),
	)

	RegisterMusicServiceServer(grpcServer, NewServer(svc, opts))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	// Register reflection service for tools like grpcurl
	reflection.Register(grpcServer)

	// Initialize gRPC metrics with all registered service methods
	srvMetrics.InitializeMetrics(grpcServer)

	return grpcServer
}

// reportedCodes lists the status codes sent to Sentry.
var reportedCodes = map[codes.Code]bool{
	codes.Internal:    true,
	codes.Unknown:     true,
	codes.Unavailable: true,
}

func reportUnaryErrors(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	reportError(info.FullMethod, err)
	return resp, err
}

func reportStreamErrors(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	err := handler(srv, ss)
	reportError(info.FullMethod, err)
	return err
}

// reportError sends err to Sentry when its code is in reportedCodes.
// Without an initialized Sentry client this is a no-op.
func reportError(method string, err error) {
	if err == nil || !reportedCodes[status.Code(err)] {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("grpc.method", method)
		scope.SetTag("grpc.code", status.Code(err).String())
		sentry.CaptureException(err)
	})
}
