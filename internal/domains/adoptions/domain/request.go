package domain

import (
	"errors"
	"strings"
)

// Status represents the lifecycle state of an adoption request.
// Approved and rejected are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ValidOutcome reports whether s is a legal decision outcome.
func ValidOutcome(s Status) bool {
	return s == StatusApproved || s == StatusRejected
}

// MaxMessageLen bounds the requester's free-text message.
const MaxMessageLen = 2000

var (
	ErrInvalidPetRef    = errors.New("adoption request needs a pet reference")
	ErrInvalidRequester = errors.New("adoption request needs a requester")
	ErrMessageTooLong   = errors.New("adoption request message is too long")
)

// AdoptionRequest is a requester's application to adopt a specific pet.
// Requests are never deleted; they move from pending to a terminal state.
type AdoptionRequest struct {
	ID          int64
	PetID       int64
	RequesterID int64
	Message     string
	Status      Status
	Read        bool
}

// NewRequest validates and builds a pending request.
func NewRequest(petID, requesterID int64, message string) (*AdoptionRequest, error) {
	if petID <= 0 {
		return nil, ErrInvalidPetRef
	}
	if requesterID <= 0 {
		return nil, ErrInvalidRequester
	}
	message = strings.TrimSpace(message)
	if len(message) > MaxMessageLen {
		return nil, ErrMessageTooLong
	}
	return &AdoptionRequest{
		PetID:       petID,
		RequesterID: requesterID,
		Message:     message,
		Status:      StatusPending,
	}, nil
}

// Decided reports whether the request reached a terminal state.
func (r *AdoptionRequest) Decided() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}

// Clone returns a copy safe to mutate.
func (r *AdoptionRequest) Clone() *AdoptionRequest {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}
