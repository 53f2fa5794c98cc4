package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"
	adoptworkflows "github.com/pawhaven/adopt-api/internal/durable/temporal/workflows/adoptions"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalAdoptionWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineAdoptionWorkflows)(nil)
)

// TemporalAdoptionWorkflows starts adoption workflows on a Temporal cluster.
type TemporalAdoptionWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalAdoptionWorkflows wires a Temporal client into the orchestrator.
func NewTemporalAdoptionWorkflows(c client.Client) *TemporalAdoptionWorkflows {
	return &TemporalAdoptionWorkflows{client: c, taskQueue: adoptworkflows.SubmissionTaskQueue}
}

// SubmitRequest starts the Temporal workflow that records an adoption request.
func (o *TemporalAdoptionWorkflows) SubmitRequest(ctx context.Context, input adopttypes.SubmitInput) (*adopttypes.RequestProjection, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal adoption workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildSubmissionWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		adoptworkflows.SubmissionWorkflow,
		adoptworkflows.SubmissionWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var projection adopttypes.RequestProjection
			if err := existingRun.Get(ctx, &projection); err != nil {
				return nil, err
			}
			return &projection, nil
		}
		return nil, err
	}
	var projection adopttypes.RequestProjection
	if err := run.Get(ctx, &projection); err != nil {
		return nil, err
	}
	return &projection, nil
}

// InlineAdoptionWorkflows executes the service directly without Temporal,
// useful for tests or dev fallbacks.
type InlineAdoptionWorkflows struct {
	service ports.Service
}

// NewInlineAdoptionWorkflows wraps the adoptions service for synchronous execution.
func NewInlineAdoptionWorkflows(service ports.Service) *InlineAdoptionWorkflows {
	return &InlineAdoptionWorkflows{service: service}
}

// SubmitRequest delegates to the application service without durable orchestration.
func (o *InlineAdoptionWorkflows) SubmitRequest(ctx context.Context, input adopttypes.SubmitInput) (*adopttypes.RequestProjection, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline adoption workflows not configured")
	}
	return o.service.Submit(ctx, input)
}

func buildSubmissionWorkflowID(input adopttypes.SubmitInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("adoption-submission-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("adoption-submission-%d-%d-%s", input.PetID, input.RequesterID, traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// First 16 hex chars keep workflow IDs readable while staying deterministic.
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
