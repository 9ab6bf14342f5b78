// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/taskfabric/taskfabric/internal/adapters/http"
	"github.com/taskfabric/taskfabric/internal/adapters/http/handlers"
	"github.com/taskfabric/taskfabric/internal/adapters/http/middleware"
	"github.com/taskfabric/taskfabric/internal/adapters/store/sqlite"

	"github.com/taskfabric/taskfabric/internal/app"
	"github.com/taskfabric/taskfabric/internal/platform/config"
	"github.com/taskfabric/taskfabric/internal/platform/health"
	"github.com/taskfabric/taskfabric/internal/platform/logging"
	"github.com/taskfabric/taskfabric/internal/platform/telemetry"
	"github.com/taskfabric/taskfabric/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, prod)")
	}

	// Bootstrap: config, logger, telemetry, store.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	store, err := sqlite.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)
	do.ProvideValue(injector, store)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(store)

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	// Repositories.
	do.Provide(injector, func(i do.Injector) (ports.ProjectRepository, error) {
		return sqlite.NewProjectRepository(do.MustInvoke[*sqlite.Store](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (ports.BoardRepository, error) {
		return sqlite.NewBoardRepository(do.MustInvoke[*sqlite.Store](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (ports.TaskRepository, error) {
		return sqlite.NewTaskRepository(do.MustInvoke[*sqlite.Store](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (ports.ActivityRepository, error) {
		return sqlite.NewActivityRepository(do.MustInvoke[*sqlite.Store](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (ports.CommentRepository, error) {
		return sqlite.NewCommentRepository(do.MustInvoke[*sqlite.Store](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (ports.UserRepository, error) {
		return sqlite.NewUserRepository(do.MustInvoke[*sqlite.Store](i)), nil
	})

	// Application services.
	do.Provide(injector, func(i do.Injector) (ports.ProjectService, error) {
		return app.NewProjectService(
			do.MustInvoke[ports.ProjectRepository](i),
			do.MustInvoke[ports.UserRepository](i),
			logger,
		), nil
	})
	do.Provide(injector, func(i do.Injector) (ports.BoardService, error) {
		return app.NewBoardService(
			do.MustInvoke[ports.BoardRepository](i),
			do.MustInvoke[ports.ProjectRepository](i),
			logger,
		), nil
	})
	do.Provide(injector, func(i do.Injector) (ports.TaskService, error) {
		return app.NewTaskService(
			do.MustInvoke[ports.TaskRepository](i),
			do.MustInvoke[ports.BoardRepository](i),
			do.MustInvoke[ports.ProjectRepository](i),
			do.MustInvoke[ports.ActivityRepository](i),
			do.MustInvoke[*telemetry.Metrics](i),
			logger,
		), nil
	})
	do.Provide(injector, func(i do.Injector) (ports.CommentService, error) {
		return app.NewCommentService(
			do.MustInvoke[ports.CommentRepository](i),
			do.MustInvoke[ports.TaskRepository](i),
			do.MustInvoke[ports.ProjectRepository](i),
			do.MustInvoke[ports.ActivityRepository](i),
			logger,
		), nil
	})
	do.Provide(injector, func(i do.Injector) (ports.UserService, error) {
		return app.NewUserService(do.MustInvoke[ports.UserRepository](i), logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	// HTTP handlers.
	do.Provide(injector, func(i do.Injector) (*handlers.ProjectHandler, error) {
		return handlers.NewProjectHandler(do.MustInvoke[ports.ProjectService](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*handlers.BoardHandler, error) {
		return handlers.NewBoardHandler(do.MustInvoke[ports.BoardService](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*handlers.TaskHandler, error) {
		return handlers.NewTaskHandler(do.MustInvoke[ports.TaskService](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*handlers.CommentHandler, error) {
		return handlers.NewCommentHandler(do.MustInvoke[ports.CommentService](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*handlers.UserHandler, error) {
		return handlers.NewUserHandler(do.MustInvoke[ports.UserService](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		return handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(
			do.MustInvoke[*handlers.ProjectHandler](i),
			do.MustInvoke[*handlers.BoardHandler](i),
			do.MustInvoke[*handlers.TaskHandler](i),
			do.MustInvoke[*handlers.CommentHandler](i),
			do.MustInvoke[*handlers.UserHandler](i),
			do.MustInvoke[*handlers.HealthHandler](i),
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
