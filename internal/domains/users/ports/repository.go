package ports

import (
	"context"
	"errors"

	"github.com/pawhaven/adopt-api/internal/domains/users/domain"
)

var (
	ErrNotFound         = errors.New("user not found")
	ErrDuplicateSubject = errors.New("subject already registered")
)

type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetBySubject(ctx context.Context, subject string) (*domain.User, error)
}
