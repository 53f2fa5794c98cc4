package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	adoptmemory "github.com/pawhaven/adopt-api/internal/domains/adoptions/adapters/memory"
	adoptpostgres "github.com/pawhaven/adopt-api/internal/domains/adoptions/adapters/persistence/postgres"
	adoptapp "github.com/pawhaven/adopt-api/internal/domains/adoptions/application"
	adoptports "github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"
	petsmemory "github.com/pawhaven/adopt-api/internal/domains/pets/adapters/memory"
	adoptworkflows "github.com/pawhaven/adopt-api/internal/durable/temporal/workflows/adoptions"
	"github.com/pawhaven/adopt-api/internal/platform/migrations"
	platformobservability "github.com/pawhaven/adopt-api/internal/platform/observability"
	platformpostgres "github.com/pawhaven/adopt-api/internal/platform/postgres"
	adoptactivities "github.com/pawhaven/adopt-api/internal/platform/temporal/activities/adoptions"
)

func main() {
	ctx := context.Background()
	const serviceName = "adopt-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	adoptRepo, idemStore, cleanupRepo := buildAdoptionRepository(ctx, logger)
	defer cleanupRepo()
	adoptService := adoptapp.NewService(adoptRepo, adoptapp.WithIdempotencyStore(idemStore))
	activities := adoptactivities.NewActivities(adoptService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, adoptworkflows.SubmissionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(adoptworkflows.SubmissionWorkflow, workflow.RegisterOptions{Name: adoptworkflows.SubmissionWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistSubmission, activity.RegisterOptions{Name: adoptactivities.PersistSubmissionActivityName})

	logger.Info("worker listening", slog.String("taskQueue", adoptworkflows.SubmissionTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildAdoptionRepository(ctx context.Context, logger *slog.Logger) (adoptports.Repository, adoptports.IdempotencyStore, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		logger.Warn("worker running with in-memory repositories; state is not durable")
		petRepo := petsmemory.NewRepository()
		return adoptmemory.NewRepository(petRepo), adoptmemory.NewIdempotencyStore(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("worker failed to run migrations", slog.String("error", err.Error()))
	}
	logger.Info("worker adoption repository configured with postgres")
	return adoptpostgres.NewRepository(db), adoptpostgres.NewIdempotencyStore(db), cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
