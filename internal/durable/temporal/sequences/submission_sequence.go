package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
	adoptactivities "github.com/pawhaven/adopt-api/internal/platform/temporal/activities/adoptions"
)

// RunSubmissionSequence executes the ordered set of activities needed to
// record an adoption request.
func RunSubmissionSequence(ctx workflow.Context, input adopttypes.SubmitInput) (*adopttypes.RequestProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("adoption submission sequence started", "petId", input.PetID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			// Business rejections are final; only transient faults retry.
			NonRetryableErrorTypes: []string{adoptactivities.SubmissionRejectedErrorType},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var projection adopttypes.RequestProjection
	err := workflow.ExecuteActivity(ctx, adoptactivities.PersistSubmissionActivityName, input).Get(ctx, &projection)
	if err != nil {
		logger.Error("adoption submission sequence failed", "petId", input.PetID, "error", err)
		return nil, err
	}
	if projection.Request != nil {
		logger.Info("adoption submission sequence completed", "requestId", projection.Request.ID)
	} else {
		logger.Info("adoption submission sequence completed")
	}
	return &projection, nil
}
