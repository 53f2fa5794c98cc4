package adoptions

import (
	"go.temporal.io/sdk/workflow"

	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adopt-api/internal/durable/temporal/sequences"
)

const (
	// SubmissionWorkflowName is the public identifier for registering the workflow.
	SubmissionWorkflowName = "adoptions.workflows.Submission"
	// SubmissionTaskQueue is the queue consumed by the worker processing adoption workflows.
	SubmissionTaskQueue = "ADOPTION_SUBMISSION"
)

// SubmissionWorkflowInput captures the payload required to file an adoption request.
type SubmissionWorkflowInput struct {
	Command adopttypes.SubmitInput
	TraceID string
}

// SubmissionWorkflow orchestrates the activities needed to record an adoption request.
func SubmissionWorkflow(ctx workflow.Context, input SubmissionWorkflowInput) (*adopttypes.RequestProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("SubmissionWorkflow started", withTraceID(input.TraceID, "petId", input.Command.PetID)...)
	projection, err := sequences.RunSubmissionSequence(ctx, input.Command)
	if err != nil {
		logger.Error("SubmissionWorkflow failed", withTraceID(input.TraceID, "petId", input.Command.PetID, "error", err)...)
		return nil, err
	}
	if projection != nil && projection.Request != nil {
		logger.Info("SubmissionWorkflow completed", withTraceID(input.TraceID, "requestId", projection.Request.ID)...)
	} else {
		logger.Info("SubmissionWorkflow completed", withTraceID(input.TraceID)...)
	}
	return projection, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
