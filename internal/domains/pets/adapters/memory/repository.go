package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	pettypes "github.com/pawhaven/adopt-api/internal/domains/pets/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/pets/domain"
	"github.com/pawhaven/adopt-api/internal/domains/pets/ports"
)

var _ ports.Repository = (*Repository)(nil)

type record struct {
	pet       domain.Pet
	createdAt time.Time
	updatedAt time.Time
}

// Repository is an in-memory pet persistence adapter for development and tests.
type Repository struct {
	mu     sync.RWMutex
	pets   map[int64]*record
	nextID int64
	now    func() time.Time
}

func NewRepository() *Repository {
	return &Repository{pets: map[int64]*record{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*pettypes.PetProjection, error) {
	if pet == nil {
		return nil, errors.New("pet is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := clonePet(pet)
	now := r.now()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	existing, ok := r.pets[clone.ID]
	createdAt := now
	if ok {
		createdAt = existing.createdAt
		// Availability fields are owned by the adoptions repository; a
		// profile save must not write back a stale status or adopter.
		clone.Status = existing.pet.Status
		clone.AdopterID = nil
		if existing.pet.AdopterID != nil {
			adopter := *existing.pet.AdopterID
			clone.AdopterID = &adopter
		}
	}
	r.pets[clone.ID] = &record{pet: *clone, createdAt: createdAt, updatedAt: now}
	pet.ID = clone.ID
	return pettypes.NewPetProjection(clonePet(clone), createdAt, now), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*pettypes.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return pettypes.NewPetProjection(clonePet(&rec.pet), rec.createdAt, rec.updatedAt), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

func (r *Repository) FindByStatus(_ context.Context, statuses []domain.Status) ([]*pettypes.PetProjection, error) {
	wanted := make(map[domain.Status]struct{}, len(statuses))
	for _, status := range statuses {
		wanted[status] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*pettypes.PetProjection
	for _, rec := range r.pets {
		if _, ok := wanted[rec.pet.Status]; ok {
			result = append(result, pettypes.NewPetProjection(clonePet(&rec.pet), rec.createdAt, rec.updatedAt))
		}
	}
	return result, nil
}

func (r *Repository) FindBySpecies(_ context.Context, species string) ([]*pettypes.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*pettypes.PetProjection
	for _, rec := range r.pets {
		if rec.pet.Species == species {
			result = append(result, pettypes.NewPetProjection(clonePet(&rec.pet), rec.createdAt, rec.updatedAt))
		}
	}
	return result, nil
}

func (r *Repository) List(_ context.Context) ([]*pettypes.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*pettypes.PetProjection, 0, len(r.pets))
	for _, rec := range r.pets {
		result = append(result, pettypes.NewPetProjection(clonePet(&rec.pet), rec.createdAt, rec.updatedAt))
	}
	return result, nil
}

// UpdateAvailability rewrites the derived status fields in place. It exists
// for the adoptions adapter, which owns every status transition.
func (r *Repository) UpdateAvailability(_ context.Context, id int64, status domain.Status, adopterID *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.pets[id]
	if !ok {
		return ports.ErrNotFound
	}
	if err := rec.pet.SetAvailability(status, adopterID); err != nil {
		return err
	}
	rec.updatedAt = r.now()
	return nil
}

func clonePet(pet *domain.Pet) *domain.Pet {
	clone := *pet
	clone.PhotoURLs = append([]string{}, pet.PhotoURLs...)
	if pet.AdopterID != nil {
		adopter := *pet.AdopterID
		clone.AdopterID = &adopter
	}
	return &clone
}
