package mapper

import (
	"time"

	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
)

// SubmitRequest captures the inbound payload for filing an adoption request.
type SubmitRequest struct {
	PetID   int64  `json:"petId"`
	Message string `json:"message,omitempty"`
}

// Decision captures the owner's verdict on a request.
type Decision struct {
	Outcome string `json:"outcome"`
}

// MarkRead captures the acknowledgement payload for decided requests.
type MarkRead struct {
	RequestIDs []int64 `json:"requestIds"`
}

// MarkReadResult reports how many requests were acknowledged.
type MarkReadResult struct {
	Updated int64 `json:"updated"`
}

// AdoptionRequest is the HTTP representation of a request.
type AdoptionRequest struct {
	ID          int64     `json:"id"`
	PetID       int64     `json:"petId"`
	PetOwnerID  int64     `json:"petOwnerId,omitempty"`
	RequesterID int64     `json:"requesterId"`
	Message     string    `json:"message,omitempty"`
	Status      string    `json:"status"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// ToSubmitInput converts a submission payload into an application input. The
// idempotency key travels in a header, not the body.
func ToSubmitInput(model SubmitRequest, requesterID int64, idempotencyKey string) adopttypes.SubmitInput {
	return adopttypes.SubmitInput{
		PetID:          model.PetID,
		RequesterID:    requesterID,
		Message:        model.Message,
		IdempotencyKey: idempotencyKey,
	}
}

// ToDecideInput converts a decision payload into an application input.
func ToDecideInput(model Decision, requestID, deciderID int64) adopttypes.DecideInput {
	return adopttypes.DecideInput{
		RequestID: requestID,
		DeciderID: deciderID,
		Outcome:   model.Outcome,
	}
}

// ToMarkReadInput converts an acknowledgement payload into an application input.
func ToMarkReadInput(model MarkRead, requesterID int64) adopttypes.MarkReadInput {
	return adopttypes.MarkReadInput{
		RequestIDs:  append([]int64{}, model.RequestIDs...),
		RequesterID: requesterID,
	}
}

// FromProjection maps a request projection into its transport representation.
func FromProjection(p *adopttypes.RequestProjection) AdoptionRequest {
	if p == nil || p.Request == nil {
		return AdoptionRequest{}
	}
	return AdoptionRequest{
		ID:          p.Request.ID,
		PetID:       p.Request.PetID,
		PetOwnerID:  p.PetOwnerID,
		RequesterID: p.Request.RequesterID,
		Message:     p.Request.Message,
		Status:      string(p.Request.Status),
		Read:        p.Request.Read,
		CreatedAt:   p.Metadata.CreatedAt,
		UpdatedAt:   p.Metadata.UpdatedAt,
	}
}

// FromProjectionList maps a slice of projections.
func FromProjectionList(list []*adopttypes.RequestProjection) []AdoptionRequest {
	result := make([]AdoptionRequest, 0, len(list))
	for _, p := range list {
		if p == nil || p.Request == nil {
			continue
		}
		result = append(result, FromProjection(p))
	}
	return result
}
