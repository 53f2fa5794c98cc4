package memory

import (
	"context"
	"sync"

	"github.com/pawhaven/adopt-api/internal/domains/users/domain"
	"github.com/pawhaven/adopt-api/internal/domains/users/ports"
)

// Repository is an in-memory user store for local development and tests.
type Repository struct {
	mu       sync.RWMutex
	users    map[int64]*domain.User
	subjects map[string]int64
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{
		users:    make(map[int64]*domain.User),
		subjects: make(map[string]int64),
		nextID:   1,
	}
}

func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, taken := r.subjects[user.Subject]; taken && existingID != user.ID {
		return nil, ports.ErrDuplicateSubject
	}
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	} else if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	clone := *user
	r.users[user.ID] = &clone
	r.subjects[user.Subject] = user.ID
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) GetBySubject(ctx context.Context, subject string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.subjects[subject]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.users[id]
	return &clone, nil
}

var _ ports.Repository = (*Repository)(nil)
