package types

import (
	"time"

	"github.com/pawhaven/adopt-api/internal/domains/adoptions/domain"
)

// RequestMetadata captures infrastructure timestamps associated with a persisted request.
type RequestMetadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequestProjection transports a request aggregate, the owning user of its
// pet (needed for access checks and the inbox view), and persistence metadata.
type RequestProjection struct {
	Request    *domain.AdoptionRequest
	PetOwnerID int64
	Metadata   RequestMetadata
}

// NewRequestProjection wraps an aggregate with its pet owner and metadata.
func NewRequestProjection(request *domain.AdoptionRequest, petOwnerID int64, createdAt, updatedAt time.Time) *RequestProjection {
	if request == nil {
		return nil
	}
	return &RequestProjection{
		Request:    request,
		PetOwnerID: petOwnerID,
		Metadata: RequestMetadata{
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
	}
}

// RequestIdentifier addresses a single request on behalf of an actor.
type RequestIdentifier struct {
	ID      int64
	ActorID int64
}

// SubmitInput carries a requester's application against a pet.
type SubmitInput struct {
	PetID       int64
	RequesterID int64
	Message     string
	// IdempotencyKey, when set, makes retried submissions replay the
	// original result instead of creating a second request.
	IdempotencyKey string
}

// DecideInput carries the owner's approve/reject decision.
type DecideInput struct {
	RequestID int64
	DeciderID int64
	Outcome   string
}

// MarkReadInput flags requests as read for their requester.
type MarkReadInput struct {
	RequestIDs  []int64
	RequesterID int64
}

// RequesterScope lists requests filed by one user.
type RequesterScope struct {
	RequesterID int64
}

// OwnerScope lists requests filed against one user's pets.
type OwnerScope struct {
	OwnerID int64
}
