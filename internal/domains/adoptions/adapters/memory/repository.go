package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/domain"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"
	petsmemory "github.com/pawhaven/adopt-api/internal/domains/pets/adapters/memory"
	petsports "github.com/pawhaven/adopt-api/internal/domains/pets/ports"
)

var _ ports.Repository = (*Repository)(nil)

type record struct {
	request   domain.AdoptionRequest
	createdAt time.Time
	updatedAt time.Time
}

// Repository is an in-memory adoption request adapter. It shares the pets
// memory repository so derived availability is visible to pet reads, and it
// serializes transitions behind one mutex, which stands in for the
// transactional guarantees of the postgres adapter.
type Repository struct {
	mu       sync.Mutex
	pets     *petsmemory.Repository
	requests map[int64]*record
	nextID   int64
	now      func() time.Time
}

func NewRepository(pets *petsmemory.Repository) *Repository {
	return &Repository{
		pets:     pets,
		requests: map[int64]*record{},
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*adopttypes.RequestProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.requests[id]
	if !ok {
		return nil, ports.ErrRequestNotFound
	}
	return r.project(ctx, rec), nil
}

func (r *Repository) ListByRequester(ctx context.Context, requesterID int64) ([]*adopttypes.RequestProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(ctx, func(rec *record) bool {
		return rec.request.RequesterID == requesterID
	}, 0), nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*adopttypes.RequestProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(ctx, func(rec *record) bool {
		return r.petOwner(ctx, rec.request.PetID) == ownerID
	}, 0), nil
}

func (r *Repository) ListUnreadDecided(ctx context.Context, limit int) ([]*adopttypes.RequestProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(ctx, func(rec *record) bool {
		return rec.request.Decided() && !rec.request.Read
	}, limit), nil
}

func (r *Repository) MarkRead(_ context.Context, ids []int64, requesterID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var changed int64
	for _, id := range ids {
		rec, ok := r.requests[id]
		if !ok || rec.request.RequesterID != requesterID || rec.request.Read {
			continue
		}
		rec.request.Read = true
		rec.updatedAt = r.now()
		changed++
	}
	return changed, nil
}

func (r *Repository) TransitionPet(ctx context.Context, petID int64, fn ports.TransitionFunc) (*adopttypes.RequestProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transition(ctx, petID, 0, fn)
}

func (r *Repository) TransitionRequest(ctx context.Context, requestID int64, fn ports.TransitionFunc) (*adopttypes.RequestProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.requests[requestID]
	if !ok {
		return nil, ports.ErrRequestNotFound
	}
	return r.transition(ctx, rec.request.PetID, requestID, fn)
}

// transition assembles the pet view, runs fn, and applies the changeset.
// The caller holds the mutex, so the whole sequence is atomic.
func (r *Repository) transition(ctx context.Context, petID, focusID int64, fn ports.TransitionFunc) (*adopttypes.RequestProjection, error) {
	petProjection, err := r.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, petsports.ErrNotFound) {
			return nil, ports.ErrPetNotFound
		}
		return nil, err
	}
	view := domain.PetView{
		Pet: domain.PetSnapshot{
			ID:      petProjection.Pet.ID,
			OwnerID: petProjection.Pet.OwnerID,
			Status:  petProjection.Pet.Status,
		},
	}
	for _, rec := range r.requests {
		if rec.request.PetID == petID {
			view.Requests = append(view.Requests, rec.request.Clone())
		}
	}
	sort.Slice(view.Requests, func(i, j int) bool { return view.Requests[i].ID < view.Requests[j].ID })

	changes, err := fn(view)
	if err != nil {
		return nil, err
	}

	now := r.now()
	if changes.Create != nil {
		r.nextID++
		created := changes.Create.Clone()
		created.ID = r.nextID
		r.requests[created.ID] = &record{request: *created, createdAt: now, updatedAt: now}
		focusID = created.ID
	}
	for id, status := range changes.StatusChanges {
		rec, ok := r.requests[id]
		if !ok {
			return nil, ports.ErrRequestNotFound
		}
		rec.request.Status = status
		rec.updatedAt = now
	}
	if err := r.pets.UpdateAvailability(ctx, petID, changes.PetStatus, changes.PetAdopterID); err != nil {
		return nil, err
	}

	rec, ok := r.requests[focusID]
	if !ok {
		return nil, ports.ErrRequestNotFound
	}
	return r.project(ctx, rec), nil
}

func (r *Repository) collect(ctx context.Context, keep func(*record) bool, limit int) []*adopttypes.RequestProjection {
	ids := make([]int64, 0, len(r.requests))
	for id := range r.requests {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var result []*adopttypes.RequestProjection
	for _, id := range ids {
		rec := r.requests[id]
		if !keep(rec) {
			continue
		}
		result = append(result, r.project(ctx, rec))
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}

func (r *Repository) project(ctx context.Context, rec *record) *adopttypes.RequestProjection {
	clone := rec.request.Clone()
	return adopttypes.NewRequestProjection(clone, r.petOwner(ctx, clone.PetID), rec.createdAt, rec.updatedAt)
}

func (r *Repository) petOwner(ctx context.Context, petID int64) int64 {
	projection, err := r.pets.GetByID(ctx, petID)
	if err != nil {
		return 0
	}
	return projection.Pet.OwnerID
}
