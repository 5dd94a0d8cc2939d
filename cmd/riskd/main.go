package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bibbank/creditrisk/internal/application/usecase"
	"github.com/bibbank/creditrisk/internal/domain/port"
	"github.com/bibbank/creditrisk/internal/domain/service"
	"github.com/bibbank/creditrisk/internal/infrastructure/artifact"
	"github.com/bibbank/creditrisk/internal/infrastructure/config"
	"github.com/bibbank/creditrisk/internal/infrastructure/kafka"
	"github.com/bibbank/creditrisk/internal/infrastructure/telemetry"
	grpcpresentation "github.com/bibbank/creditrisk/internal/presentation/grpc"
	"github.com/bibbank/creditrisk/internal/presentation/rest"
	pkgkafka "github.com/bibbank/creditrisk/pkg/kafka"
	"github.com/bibbank/creditrisk/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		slog.Error("credit-risk-service exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: cfg.ServiceName,
	})

	logger.Info("starting credit-risk-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"model_path", cfg.ModelPath,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	// Load model parameters. The service never starts with a bad artifact.
	art, err := artifact.Load(cfg.ModelPath)
	if err != nil {
		return err
	}
	engine, err := service.NewScoringEngine(art.Parameters)
	if err != nil {
		return err
	}
	logger.Info("model loaded",
		"model_version", art.Parameters.ModelVersion(),
		"digest", art.Digest,
		"format", string(art.Format),
	)

	// Wire infrastructure adapters.
	var publisher port.EventPublisher = kafka.NewDiscardPublisher(logger)
	if cfg.Kafka.Enabled() {
		producer, err := pkgkafka.NewProducer(pkgkafka.Config{
			Brokers:       cfg.Kafka.Brokers,
			ClientID:      cfg.ServiceName,
			SASLEnabled:   cfg.Kafka.SASLMechanism != "",
			SASLMechanism: cfg.Kafka.SASLMechanism,
			SASLUsername:  cfg.Kafka.SASLUsername,
			SASLPassword:  cfg.Kafka.SASLPassword,
			TLS:           cfg.Kafka.TLS,
		})
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer producer.Close()
		publisher = kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)
		logger.Info("publishing decision events", "topic", cfg.Kafka.Topic)
	}

	recorder, err := telemetry.NewScoreRecorder(meterProvider, art.Parameters.ModelVersion())
	if err != nil {
		return fmt.Errorf("score recorder: %w", err)
	}

	// Wire use cases.
	scoreApplicantUC := usecase.NewScoreApplicantUseCase(engine, publisher, recorder, logger)
	describeModelUC := usecase.NewDescribeModelUseCase(engine, art.Digest)

	// gRPC server.
	grpcHandler := grpcpresentation.NewCreditRiskHandler(scoreApplicantUC, describeModelUC, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		ServiceName: cfg.ServiceName,
		TLSCertFile: cfg.TLS.CertFile,
		TLSKeyFile:  cfg.TLS.KeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)
	if err != nil {
		return err
	}

	// HTTP server (health, metrics, JSON scoring).
	healthHandler := rest.NewHealthHandler(cfg.ServiceName, art.Parameters.ModelVersion(), logger)
	scoreHandler := rest.NewScoreHandler(scoreApplicantUC, describeModelUC, logger)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      rest.NewRouter(healthHandler, scoreHandler, metricsHandler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	grpcServer.SetServing(true)
	healthHandler.SetReady(true)
	logger.Info("credit-risk-service started",
		"grpc_address", cfg.GRPCAddr(),
		"http_address", cfg.HTTPAddr(),
	)

	// Wait for shutdown signal or the first server failure.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down credit-risk-service")

		grpcServer.SetServing(false)
		healthHandler.SetReady(false)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		grpcServer.GracefulStop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
		}
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("meter provider shutdown error", "error", err)
		}
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown error", "error", err)
		}
		return nil
	})

	err = g.Wait()
	logger.Info("credit-risk-service stopped")
	return err
}
