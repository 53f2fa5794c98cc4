package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/pawhaven/adopt-api/internal/domains/users/domain"
	"github.com/pawhaven/adopt-api/internal/domains/users/ports"
)

// Service exposes user bounded context use cases. Authentication happens at
// an external identity provider; this service only links verified subjects
// to local accounts and manages bearer sessions.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
}

func NewService(repo ports.Repository, sessions ports.SessionStore) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	return &Service{repo: repo, sessions: sessions}
}

func (s *Service) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if user.Role == "" {
		user.Role = domain.RoleAdopter
	}
	if err := user.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetBySubject(ctx context.Context, subject string) (*domain.User, error) {
	return s.repo.GetBySubject(ctx, strings.TrimSpace(subject))
}

func (s *Service) Login(ctx context.Context, subject string) (string, *domain.User, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", nil, mapError(domain.ErrEmptySubject)
	}
	user, err := s.repo.GetBySubject(ctx, subject)
	if err != nil {
		return "", nil, err
	}
	token := uuid.NewString()
	if err := s.sessions.Save(ctx, token, user.ID); err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *Service) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, mapError(ports.ErrSessionNotFound)
	}
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.GetByID(ctx, userID)
}

var _ ports.Service = (*Service)(nil)
