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

	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/domain"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"
)

const tracerName = "github.com/pawhaven/adopt-api/internal/domains/adoptions/adapters/observability/service"

// Service decorates the adoption lifecycle port with tracing, logging, and metrics.
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

// Submit records an adoption application with instrumentation.
func (s *Service) Submit(ctx context.Context, input adopttypes.SubmitInput) (*adopttypes.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Submit",
		attribute.Int64("pet.id", input.PetID),
		attribute.Int64("requester.id", input.RequesterID),
		attribute.Bool("idempotent", input.IdempotencyKey != ""),
	)
	defer span.End()

	s.logInfo(ctx, "submitting adoption request",
		slog.Int64("pet.id", input.PetID), slog.Int64("requester.id", input.RequesterID))
	result, err := s.inner.Submit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to submit adoption request",
			slog.Int64("pet.id", input.PetID), slog.Int64("requester.id", input.RequesterID))
	}
	if result != nil && result.Request != nil {
		span.SetAttributes(attribute.Int64("request.id", result.Request.ID))
		s.metrics.recordSubmitted(ctx)
		s.logInfo(ctx, "adoption request submitted",
			slog.Int64("request.id", result.Request.ID), slog.Int64("pet.id", result.Request.PetID))
	}
	return result, nil
}

// Decide applies the owner's verdict with instrumentation.
func (s *Service) Decide(ctx context.Context, input adopttypes.DecideInput) (*adopttypes.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Decide",
		attribute.Int64("request.id", input.RequestID),
		attribute.String("request.outcome", input.Outcome),
	)
	defer span.End()

	s.logInfo(ctx, "deciding adoption request",
		slog.Int64("request.id", input.RequestID), slog.String("outcome", input.Outcome))
	result, err := s.inner.Decide(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to decide adoption request",
			slog.Int64("request.id", input.RequestID), slog.String("outcome", input.Outcome))
	}
	if result != nil && result.Request != nil {
		s.metrics.recordDecided(ctx, result.Request.Status)
		s.logInfo(ctx, "adoption request decided",
			slog.Int64("request.id", result.Request.ID), slog.String("status", string(result.Request.Status)))
	}
	return result, nil
}

// MarkRead acknowledges decided requests for their requester.
func (s *Service) MarkRead(ctx context.Context, input adopttypes.MarkReadInput) (int64, error) {
	ctx, span := s.startSpan(ctx, "Service.MarkRead",
		attribute.Int("request.count", len(input.RequestIDs)),
		attribute.Int64("requester.id", input.RequesterID),
	)
	defer span.End()

	updated, err := s.inner.MarkRead(ctx, input)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to mark requests read",
			slog.Int64("requester.id", input.RequesterID))
	}
	span.SetAttributes(attribute.Int64("request.updated", updated))
	s.metrics.recordRead(ctx, updated)
	s.logInfo(ctx, "adoption requests marked read",
		slog.Int64("requester.id", input.RequesterID), slog.Int64("updated", updated))
	return updated, nil
}

// GetByID loads a single request.
func (s *Service) GetByID(ctx context.Context, input adopttypes.RequestIdentifier) (*adopttypes.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.Int64("request.id", input.ID))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load adoption request", slog.Int64("request.id", input.ID))
	}
	return result, nil
}

// ListMine lists the requester's requests.
func (s *Service) ListMine(ctx context.Context, scope adopttypes.RequesterScope) ([]*adopttypes.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ListMine", attribute.Int64("requester.id", scope.RequesterID))
	defer span.End()

	result, err := s.inner.ListMine(ctx, scope)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list requester's requests",
			slog.Int64("requester.id", scope.RequesterID))
	}
	span.SetAttributes(attribute.Int("request.result.count", len(result)))
	return result, nil
}

// ListInbox lists requests against the owner's pets.
func (s *Service) ListInbox(ctx context.Context, scope adopttypes.OwnerScope) ([]*adopttypes.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ListInbox", attribute.Int64("owner.id", scope.OwnerID))
	defer span.End()

	result, err := s.inner.ListInbox(ctx, scope)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list owner's inbox",
			slog.Int64("owner.id", scope.OwnerID))
	}
	span.SetAttributes(attribute.Int("request.result.count", len(result)))
	return result, nil
}

// ListUnreadDecided lists decided requests awaiting acknowledgement.
func (s *Service) ListUnreadDecided(ctx context.Context, limit int) ([]*adopttypes.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ListUnreadDecided", attribute.Int("limit", limit))
	defer span.End()

	result, err := s.inner.ListUnreadDecided(ctx, limit)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list unread decided requests")
	}
	span.SetAttributes(attribute.Int("request.result.count", len(result)))
	return result, nil
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
	requestsSubmitted metric.Int64Counter
	requestsDecided   metric.Int64Counter
	requestsRead      metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	submitted, _ := m.Int64Counter("adoptions.service.submitted", metric.WithDescription("Number of adoption requests submitted"))
	decided, _ := m.Int64Counter("adoptions.service.decided", metric.WithDescription("Number of adoption requests decided"))
	read, _ := m.Int64Counter("adoptions.service.read", metric.WithDescription("Number of adoption requests marked read"))
	return serviceMetrics{
		requestsSubmitted: submitted,
		requestsDecided:   decided,
		requestsRead:      read,
	}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context) {
	addCounter(ctx, m.requestsSubmitted, 1)
}

func (m serviceMetrics) recordDecided(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.requestsDecided, 1, attribute.String("request.status", string(status)))
}

func (m serviceMetrics) recordRead(ctx context.Context, count int64) {
	if count <= 0 {
		return
	}
	addCounter(ctx, m.requestsRead, count)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
