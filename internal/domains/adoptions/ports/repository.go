package ports

import (
	"context"
	"errors"

	"github.com/pawhaven/adopt-api/internal/domains/adoptions/domain"
	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
)

var (
	// ErrPetNotFound signals the pet addressed by a submission does not exist.
	ErrPetNotFound = errors.New("pet not found")
	// ErrRequestNotFound signals the addressed adoption request does not exist.
	ErrRequestNotFound = errors.New("adoption request not found")
	// ErrTransient signals a fault (serialization failure, dropped
	// connection) the caller may retry once. Never a business error.
	ErrTransient = errors.New("transient persistence failure")
)

// TransitionFunc plans a lifecycle transition from the current state of a pet
// and its requests. Implementations of Repository call it inside the atomic
// unit that will persist the returned ChangeSet.
type TransitionFunc func(view domain.PetView) (*domain.ChangeSet, error)

// Repository is the outbound persistence port of the adoptions bounded
// context. The two Transition methods are the only writers of request status
// and of the pet's derived availability.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*adopttypes.RequestProjection, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*adopttypes.RequestProjection, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*adopttypes.RequestProjection, error)
	// ListUnreadDecided returns decided requests the requester has not read
	// yet, oldest first, for the notification relay to poll.
	ListUnreadDecided(ctx context.Context, limit int) ([]*adopttypes.RequestProjection, error)
	// MarkRead flags the given requests as read, restricted to those filed
	// by requesterID. It returns how many rows changed.
	MarkRead(ctx context.Context, ids []int64, requesterID int64) (int64, error)
	// TransitionPet runs fn against the pet's current view and atomically
	// applies the resulting ChangeSet. The returned projection is the
	// created request.
	TransitionPet(ctx context.Context, petID int64, fn TransitionFunc) (*adopttypes.RequestProjection, error)
	// TransitionRequest resolves the request's pet first, then behaves like
	// TransitionPet. The returned projection is the addressed request.
	TransitionRequest(ctx context.Context, requestID int64, fn TransitionFunc) (*adopttypes.RequestProjection, error)
}
