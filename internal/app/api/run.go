package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	adoptserver "github.com/pawhaven/adopt-api/go"

	relayclient "github.com/pawhaven/adopt-api/internal/clients/http/relay"
	adoptrelay "github.com/pawhaven/adopt-api/internal/domains/adoptions/adapters/external/relay"
	adoptmemory "github.com/pawhaven/adopt-api/internal/domains/adoptions/adapters/memory"
	adoptobs "github.com/pawhaven/adopt-api/internal/domains/adoptions/adapters/observability"
	adoptpostgres "github.com/pawhaven/adopt-api/internal/domains/adoptions/adapters/persistence/postgres"
	adoptworkflows "github.com/pawhaven/adopt-api/internal/domains/adoptions/adapters/workflows"
	adoptapp "github.com/pawhaven/adopt-api/internal/domains/adoptions/application"
	adoptports "github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"

	petsmemory "github.com/pawhaven/adopt-api/internal/domains/pets/adapters/memory"
	petsobs "github.com/pawhaven/adopt-api/internal/domains/pets/adapters/observability"
	petspostgres "github.com/pawhaven/adopt-api/internal/domains/pets/adapters/persistence/postgres"
	petsapp "github.com/pawhaven/adopt-api/internal/domains/pets/application"
	petsports "github.com/pawhaven/adopt-api/internal/domains/pets/ports"

	usersmemory "github.com/pawhaven/adopt-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/pawhaven/adopt-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/pawhaven/adopt-api/internal/domains/users/application"
	usersports "github.com/pawhaven/adopt-api/internal/domains/users/ports"

	"github.com/pawhaven/adopt-api/internal/platform/migrations"
	platformobservability "github.com/pawhaven/adopt-api/internal/platform/observability"
	platformpostgres "github.com/pawhaven/adopt-api/internal/platform/postgres"
)

// Run boots the adoption HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "adopt-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, cleanupDB := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	petRepo, adoptRepo, idemStore := buildRepositories(db, logger)

	corePetService := petsapp.NewService(petRepo)
	petService := petsobs.New(
		corePetService,
		petsobs.WithLogger(logger),
		petsobs.WithTracer(instruments.Tracer("internal.pets.application")),
		petsobs.WithMeter(instruments.Meter("internal.pets.application")),
	)

	coreAdoptService := adoptapp.NewService(adoptRepo, adoptapp.WithIdempotencyStore(idemStore))
	adoptService := adoptobs.New(
		coreAdoptService,
		adoptobs.WithLogger(logger),
		adoptobs.WithTracer(instruments.Tracer("internal.adoptions.application")),
		adoptobs.WithMeter(instruments.Meter("internal.adoptions.application")),
	)

	userService := buildUserService(db, cfg)

	var adoptOrchestrator adoptports.WorkflowOrchestrator = adoptworkflows.NewInlineAdoptionWorkflows(adoptService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running submissions inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		adoptOrchestrator = adoptworkflows.NewTemporalAdoptionWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	if poller, err := buildRelayPoller(cfg, adoptService, logger); err != nil {
		logger.Warn("notification relay disabled", slog.String("error", err.Error()))
	} else if poller != nil {
		if err := poller.Start(ctx); err != nil {
			return fmt.Errorf("failed to start relay poller: %w", err)
		}
		defer poller.Stop()
	}

	handlers := adoptserver.ApiHandleFunctions{
		PetAPI:      adoptserver.NewPetAPI(petService),
		AdoptionAPI: adoptserver.NewAdoptionAPI(adoptService, adoptOrchestrator),
		UserAPI:     adoptserver.NewUserAPI(userService),
	}

	engine := gin.Default()
	engine.Use(otelgin.Middleware(serviceName))
	engine.Use(adoptserver.SessionMiddleware(userService))
	router := adoptserver.NewRouterWithGinEngine(engine, handlers)

	addr := ":" + cfg.Port
	logger.Info("adoption API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("adoption API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildRepositories picks postgres-backed adapters when a DB is configured
// and in-memory fallbacks otherwise. The memory adoption repository shares
// the memory pet repository so availability stays derived from one source.
func buildRepositories(db *gorm.DB, logger *slog.Logger) (petsports.Repository, adoptports.Repository, adoptports.IdempotencyStore) {
	if db == nil {
		logger.Warn("running with in-memory repositories; state is not durable")
		petRepo := petsmemory.NewRepository()
		return petRepo, adoptmemory.NewRepository(petRepo), adoptmemory.NewIdempotencyStore()
	}
	return petspostgres.NewRepository(db), adoptpostgres.NewRepository(db), adoptpostgres.NewIdempotencyStore(db)
}

func buildUserService(db *gorm.DB, cfg Config) usersports.Service {
	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	if db == nil {
		return usersapp.NewService(usersmemory.NewRepository(), usersmemory.NewSessionStore(sessionTTL))
	}
	return usersapp.NewService(userspostgres.NewRepository(db), userspostgres.NewSessionStore(db, sessionTTL))
}

func buildRelayPoller(cfg Config, service adoptports.Service, logger *slog.Logger) (*adoptrelay.Poller, error) {
	if cfg.RelayWebhookURL == "" {
		return nil, nil
	}
	webhook, err := relayclient.NewClient(cfg.RelayWebhookURL, nil)
	if err != nil {
		return nil, err
	}
	opts := []adoptrelay.PollerOption{adoptrelay.WithLogger(logger)}
	if cfg.RelayPollSpec != "" {
		opts = append(opts, adoptrelay.WithPollSpec(cfg.RelayPollSpec))
	}
	if cfg.RelayBatchSize > 0 {
		opts = append(opts, adoptrelay.WithBatchSize(cfg.RelayBatchSize))
	}
	return adoptrelay.NewPoller(service, adoptrelay.NewPublisher(webhook), opts...), nil
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
