package adoptions

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/pawhaven/adopt-api/internal/domains/adoptions/application"
	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/domain"
	adoptports "github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"
)

const (
	// PersistSubmissionActivityName records an adoption request through the application service.
	PersistSubmissionActivityName = "adoptions.activities.PersistSubmission"
	// SubmissionRejectedErrorType marks business rejections the workflow must not retry.
	SubmissionRejectedErrorType = "AdoptionSubmissionRejected"
)

// Activities groups activities that operate on the adoptions bounded context.
type Activities struct {
	service adoptports.Service
}

// NewActivities wires the adoptions service into the Temporal activities bundle.
func NewActivities(service adoptports.Service) *Activities {
	return &Activities{service: service}
}

// PersistSubmission records an adoption request and returns its projection.
func (a *Activities) PersistSubmission(ctx context.Context, input adopttypes.SubmitInput) (*adopttypes.RequestProjection, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("submission activity not initialized", "petId", input.PetID)
		return nil, errors.New("submission activity not initialized")
	}
	logger.Info("PersistSubmission activity started", "petId", input.PetID, "requesterId", input.RequesterID)
	projection, err := a.service.Submit(ctx, input)
	if err != nil {
		if isBusinessRejection(err) {
			logger.Info("PersistSubmission rejected", "petId", input.PetID, "error", err)
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), SubmissionRejectedErrorType, err)
		}
		logger.Error("PersistSubmission activity failed", "petId", input.PetID, "error", err)
		return nil, err
	}
	if projection != nil && projection.Request != nil {
		logger.Info("PersistSubmission activity completed", "requestId", projection.Request.ID)
	}
	return projection, nil
}

// isBusinessRejection separates final rule violations from infrastructure faults.
func isBusinessRejection(err error) bool {
	return errors.Is(err, domain.ErrPetNotAvailable) ||
		errors.Is(err, domain.ErrDuplicateRequest) ||
		errors.Is(err, domain.ErrOwnListing) ||
		errors.Is(err, application.ErrInvalidInput) ||
		errors.Is(err, adoptports.ErrPetNotFound) ||
		errors.Is(err, adoptports.ErrIdempotencyConflict)
}
