package ports

import (
	"context"

	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
)

// WorkflowOrchestrator exposes durable workflow operations required by the
// adoptions bounded context.
type WorkflowOrchestrator interface {
	SubmitRequest(ctx context.Context, input adopttypes.SubmitInput) (*adopttypes.RequestProjection, error)
}
