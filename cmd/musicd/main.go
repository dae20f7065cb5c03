package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/errgroup"

	"github.com/Belphemur/SuperMusic/internal/app"
	"github.com/Belphemur/SuperMusic/internal/config"
	grpcserver "github.com/Belphemur/SuperMusic/internal/grpc"
	"github.com/Belphemur/SuperMusic/internal/metrics"
)

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("proxy_connection_string", cfg.ProxyConnectionString).
		Str("lookup_base_url", cfg.Lookup.BaseURL).
		Bool("api_key_set", cfg.Lookup.APIKey != "").
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Str("output_dir", cfg.Download.OutputDir).
		Msg("Application started with configuration")

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			logger.Error().Err(err).Msg("Failed to initialize Sentry, continuing without error reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	components, err := app.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create services")
	}
	defer func() {
		if err := components.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close client")
		}
	}()

	grpcServer := grpcserver.NewGRPCServer(grpcserver.Services{
		Resolver:   components.Resolver,
		Search:     components.Search,
		Downloader: components.Downloader,
		Fetcher:    components.Fetcher,
	}, grpcserver.Options{
		OutputDir:      cfg.Download.OutputDir,
		RequestTimeout: config.ParseDuration("server.request_timeout", cfg.Server.RequestTimeout, 0),
	})

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		logger.Fatal().Err(err).Str("address", address).Msg("Failed to create listener")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("address", address).Msg("Starting gRPC server")
		return grpcServer.Serve(listener)
	})

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		g.Go(func() error {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("failed to serve metrics: %w", err)
			}
			return nil
		})
	}

	// Handle graceful shutdown
	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("Shutting down")
		grpcServer.GracefulStop()
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		sentry.CaptureException(err)
		logger.Error().Err(err).Msg("Server stopped with error")
		return
	}

	logger.Info().Msg("Server stopped gracefully")
}
