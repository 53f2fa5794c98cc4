package domain

import (
	"errors"

	petsdomain "github.com/pawhaven/adopt-api/internal/domains/pets/domain"
)

var (
	ErrPetNotAvailable  = errors.New("pet is no longer available for adoption")
	ErrDuplicateRequest = errors.New("requester already has a pending request for this pet")
	ErrOwnListing       = errors.New("owner cannot request adoption of their own pet")
	ErrForbidden        = errors.New("only the pet owner may decide a request")
	ErrAlreadyDecided   = errors.New("request is no longer pending")
	ErrUnknownOutcome   = errors.New("outcome must be approved or rejected")
	ErrRequestMissing   = errors.New("request is not part of the pet's adoption history")
)

// PetSnapshot is the slice of the pet aggregate the lifecycle needs: identity,
// ownership, and current availability.
type PetSnapshot struct {
	ID      int64
	OwnerID int64
	Status  petsdomain.Status
}

// PetView is the state a transition operates on: one pet and every adoption
// request ever filed against it. Repositories assemble it inside the same
// atomic unit that later applies the resulting ChangeSet.
type PetView struct {
	Pet      PetSnapshot
	Requests []*AdoptionRequest
}

// ChangeSet is the full effect of one transition. Either all of it persists
// or none of it does.
type ChangeSet struct {
	// Create is a new pending request (submit only).
	Create *AdoptionRequest
	// StatusChanges maps request id to its new status, including cascaded
	// rejections.
	StatusChanges map[int64]Status
	// PetStatus is the re-derived availability of the pet.
	PetStatus petsdomain.Status
	// PetAdopterID is recorded on the pet when PetStatus is adopted.
	PetAdopterID *int64
}

// DeriveAvailability computes a pet's availability purely from its request
// set: any approved request wins, else any pending request holds the pet,
// else it is available. This is the single authoritative definition; no
// transition toggles pet status by hand.
func DeriveAvailability(requests []*AdoptionRequest) petsdomain.Status {
	status := petsdomain.StatusAvailable
	for _, request := range requests {
		switch request.Status {
		case StatusApproved:
			return petsdomain.StatusAdopted
		case StatusPending:
			status = petsdomain.StatusPending
		}
	}
	return status
}

// Submit plans the creation of a pending request. Several requesters may
// hold pending requests against the same pet; only an adopted pet is closed
// to new interest. The requester must not be the owner, and the
// (pet, requester) pair must not already have a pending request.
func Submit(view PetView, requesterID int64, message string) (*ChangeSet, error) {
	if view.Pet.Status == petsdomain.StatusAdopted {
		return nil, ErrPetNotAvailable
	}
	if view.Pet.OwnerID == requesterID {
		return nil, ErrOwnListing
	}
	for _, existing := range view.Requests {
		if existing.RequesterID == requesterID && existing.Status == StatusPending {
			return nil, ErrDuplicateRequest
		}
	}
	request, err := NewRequest(view.Pet.ID, requesterID, message)
	if err != nil {
		return nil, err
	}
	return &ChangeSet{
		Create:    request,
		PetStatus: DeriveAvailability(append(view.Requests, request)),
	}, nil
}

// Decide plans an approve or reject transition for requestID on behalf of
// deciderID. Approval cascades rejection over every sibling request that is
// still pending; rejection re-derives the pet's availability from whatever
// pending requests remain.
func Decide(view PetView, requestID, deciderID int64, outcome Status) (*ChangeSet, error) {
	if !ValidOutcome(outcome) {
		return nil, ErrUnknownOutcome
	}
	if view.Pet.OwnerID != deciderID {
		return nil, ErrForbidden
	}
	var target *AdoptionRequest
	for _, request := range view.Requests {
		if request.ID == requestID {
			target = request
			break
		}
	}
	if target == nil {
		return nil, ErrRequestMissing
	}
	if target.Status != StatusPending {
		return nil, ErrAlreadyDecided
	}

	changes := map[int64]Status{requestID: outcome}
	if outcome == StatusApproved {
		for _, sibling := range view.Requests {
			if sibling.ID != requestID && sibling.Status == StatusPending {
				changes[sibling.ID] = StatusRejected
			}
		}
	}

	// Re-derive availability against the post-transition request set.
	after := make([]*AdoptionRequest, 0, len(view.Requests))
	for _, request := range view.Requests {
		clone := request.Clone()
		if status, ok := changes[clone.ID]; ok {
			clone.Status = status
		}
		after = append(after, clone)
	}

	result := &ChangeSet{
		StatusChanges: changes,
		PetStatus:     DeriveAvailability(after),
	}
	if outcome == StatusApproved {
		adopter := target.RequesterID
		result.PetAdopterID = &adopter
	}
	return result, nil
}
