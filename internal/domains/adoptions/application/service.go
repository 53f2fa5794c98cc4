package application

import (
	"context"
	"errors"
	"strings"

	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/domain"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"
)

// Service orchestrates the adoption lifecycle use cases.
type Service struct {
	repo        ports.Repository
	idempotency ports.IdempotencyStore
}

// Option customizes the service construction.
type Option func(*Service)

// WithIdempotencyStore enables replay of submissions carrying a client key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// NewService wires the adoptions service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Submit files an adoption request against an available pet and flips the
// pet to pending, atomically. A repeated submission with the same
// idempotency key and payload replays the stored request.
func (s *Service) Submit(ctx context.Context, input adopttypes.SubmitInput) (*adopttypes.RequestProjection, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	var fingerprint string
	if key != "" && s.idempotency != nil {
		var err error
		fingerprint, err = FingerprintSubmit(input)
		if err != nil {
			return nil, err
		}
		record, err := s.idempotency.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if record != nil {
			if record.RequestHash != fingerprint {
				return nil, ports.ErrIdempotencyConflict
			}
			return s.repo.GetByID(ctx, record.RequestID)
		}
	}

	projection, err := s.transitionPet(ctx, input.PetID, func(view domain.PetView) (*domain.ChangeSet, error) {
		return domain.Submit(view, input.RequesterID, input.Message)
	})
	if err != nil {
		return nil, mapError(err)
	}

	if key != "" && s.idempotency != nil {
		// The transition has committed; the request stands whether or not
		// the key write lands. A lost key only downgrades a later retry
		// from replay to the duplicate-pending guard.
		_, _ = s.idempotency.Save(ctx, ports.IdempotencyRecord{
			Key:         key,
			RequestHash: fingerprint,
			RequestID:   projection.Request.ID,
		})
	}
	return projection, nil
}

// Decide approves or rejects a pending request on behalf of the pet owner.
// Approval cascades rejection of sibling pending requests; both outcomes
// re-derive the pet's availability.
func (s *Service) Decide(ctx context.Context, input adopttypes.DecideInput) (*adopttypes.RequestProjection, error) {
	outcome := domain.Status(strings.ToLower(strings.TrimSpace(input.Outcome)))
	projection, err := s.transitionRequest(ctx, input.RequestID, func(view domain.PetView) (*domain.ChangeSet, error) {
		return domain.Decide(view, input.RequestID, input.DeciderID, outcome)
	})
	if err != nil {
		return nil, mapError(err)
	}
	return projection, nil
}

// MarkRead flags the given requests as read for their requester. Ids not
// owned by the requester are skipped silently.
func (s *Service) MarkRead(ctx context.Context, input adopttypes.MarkReadInput) (int64, error) {
	if len(input.RequestIDs) == 0 {
		return 0, nil
	}
	changed, err := s.repo.MarkRead(ctx, input.RequestIDs, input.RequesterID)
	if err != nil {
		return 0, mapError(err)
	}
	return changed, nil
}

// GetByID loads a single request, visible to its requester and the pet owner.
func (s *Service) GetByID(ctx context.Context, input adopttypes.RequestIdentifier) (*adopttypes.RequestProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if projection.Request.RequesterID != input.ActorID && projection.PetOwnerID != input.ActorID {
		return nil, domain.ErrForbidden
	}
	return projection, nil
}

// ListMine returns the requester's own requests.
func (s *Service) ListMine(ctx context.Context, scope adopttypes.RequesterScope) ([]*adopttypes.RequestProjection, error) {
	result, err := s.repo.ListByRequester(ctx, scope.RequesterID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// ListInbox returns every request filed against the owner's pets.
func (s *Service) ListInbox(ctx context.Context, scope adopttypes.OwnerScope) ([]*adopttypes.RequestProjection, error) {
	result, err := s.repo.ListByOwner(ctx, scope.OwnerID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// ListUnreadDecided exposes decided-and-unread requests for the relay poll.
func (s *Service) ListUnreadDecided(ctx context.Context, limit int) ([]*adopttypes.RequestProjection, error) {
	result, err := s.repo.ListUnreadDecided(ctx, limit)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// transitionPet applies a transition with a single internal retry on
// transient persistence faults. Business-rule failures are never retried.
func (s *Service) transitionPet(ctx context.Context, petID int64, fn ports.TransitionFunc) (*adopttypes.RequestProjection, error) {
	projection, err := s.repo.TransitionPet(ctx, petID, fn)
	if errors.Is(err, ports.ErrTransient) {
		projection, err = s.repo.TransitionPet(ctx, petID, fn)
	}
	return projection, err
}

func (s *Service) transitionRequest(ctx context.Context, requestID int64, fn ports.TransitionFunc) (*adopttypes.RequestProjection, error) {
	projection, err := s.repo.TransitionRequest(ctx, requestID, fn)
	if errors.Is(err, ports.ErrTransient) {
		projection, err = s.repo.TransitionRequest(ctx, requestID, fn)
	}
	return projection, err
}

var _ ports.Service = (*Service)(nil)
