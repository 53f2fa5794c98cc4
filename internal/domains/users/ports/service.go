package ports

import (
	"context"

	"github.com/pawhaven/adopt-api/internal/domains/users/domain"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetBySubject(ctx context.Context, subject string) (*domain.User, error)
	// Login exchanges a verified identity subject for a bearer session token.
	Login(ctx context.Context, subject string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	// ResolveSession returns the user behind a bearer token.
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
}
