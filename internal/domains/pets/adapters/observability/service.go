package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	pettypes "github.com/pawhaven/adopt-api/internal/domains/pets/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/pets/domain"
	"github.com/pawhaven/adopt-api/internal/domains/pets/ports"
)

const tracerName = "github.com/pawhaven/adopt-api/internal/domains/pets/adapters/observability/service"

// Service decorates a pets application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// Register publishes a new pet listing with instrumentation.
func (s *Service) Register(ctx context.Context, input pettypes.RegisterPetInput) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Register", attribute.Int64("pet.owner_id", input.OwnerID))
	defer span.End()

	s.logInfo(ctx, "registering pet", slog.Int64("owner.id", input.OwnerID), slog.String("species", input.Species))
	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register pet", slog.Int64("owner.id", input.OwnerID))
	}
	if result != nil && result.Pet != nil {
		s.metrics.recordRegistered(ctx, result.Pet.Status)
		s.logInfo(ctx, "pet registered", slog.Int64("pet.id", result.Pet.ID), slog.String("status", string(result.Pet.Status)))
	}
	return result, nil
}

// Update applies owner-submitted profile changes.
func (s *Service) Update(ctx context.Context, input pettypes.UpdatePetInput) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Update", attribute.Int64("pet.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "updating pet", slog.Int64("pet.id", input.ID))
	result, err := s.inner.Update(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update pet", slog.Int64("pet.id", input.ID))
	}
	if result != nil && result.Pet != nil {
		s.metrics.recordUpdated(ctx, result.Pet.Status)
		s.logInfo(ctx, "pet updated", slog.Int64("pet.id", result.Pet.ID), slog.String("status", string(result.Pet.Status)))
	}
	return result, nil
}

// GetByID loads a single pet aggregate.
func (s *Service) GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.Int64("pet.id", input.ID))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load pet", slog.Int64("pet.id", input.ID))
	}
	return result, nil
}

// FindByStatus searches pets matching any of the provided statuses.
func (s *Service) FindByStatus(ctx context.Context, input pettypes.FindPetsByStatusInput) ([]*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.FindByStatus", attribute.StringSlice("pet.statuses.requested", input.Statuses))
	defer span.End()

	result, err := s.inner.FindByStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to find pets by status", slog.Any("statuses", input.Statuses))
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result)))
	return result, nil
}

// FindBySpecies searches pets of one species.
func (s *Service) FindBySpecies(ctx context.Context, input pettypes.FindPetsBySpeciesInput) ([]*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.FindBySpecies", attribute.String("pet.species.requested", input.Species))
	defer span.End()

	result, err := s.inner.FindBySpecies(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to find pets by species", slog.String("species", input.Species))
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result)))
	return result, nil
}

// List exposes all pets.
func (s *Service) List(ctx context.Context) ([]*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pets")
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result)))
	return result, nil
}

// Delete removes an available listing.
func (s *Service) Delete(ctx context.Context, input pettypes.DeletePetInput) error {
	ctx, span := s.startSpan(ctx, "Service.Delete", attribute.Int64("pet.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "deleting pet", slog.Int64("pet.id", input.ID))
	if err := s.inner.Delete(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete pet", slog.Int64("pet.id", input.ID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "pet deleted", slog.Int64("pet.id", input.ID))
	return nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	petsRegistered metric.Int64Counter
	petsUpdated    metric.Int64Counter
	petsDeleted    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	petsRegistered, _ := m.Int64Counter("pets.service.registered", metric.WithDescription("Number of pet listings registered"))
	petsUpdated, _ := m.Int64Counter("pets.service.updated", metric.WithDescription("Number of pet listings updated"))
	petsDeleted, _ := m.Int64Counter("pets.service.deleted", metric.WithDescription("Number of pet listings deleted"))
	return serviceMetrics{
		petsRegistered: petsRegistered,
		petsUpdated:    petsUpdated,
		petsDeleted:    petsDeleted,
	}
}

func (m serviceMetrics) recordRegistered(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.petsRegistered, 1, attribute.String("pet.status", string(status)))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.petsUpdated, 1, attribute.String("pet.status", string(status)))
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.petsDeleted, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
