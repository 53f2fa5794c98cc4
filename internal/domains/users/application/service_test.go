package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pawhaven/adopt-api/internal/domains/users/adapters/memory"
	"github.com/pawhaven/adopt-api/internal/domains/users/domain"
	"github.com/pawhaven/adopt-api/internal/domains/users/ports"
)

func newUserService(t *testing.T) (*Service, *memory.SessionStore) {
	t.Helper()
	sessions := memory.NewSessionStore(0)
	return NewService(memory.NewRepository(), sessions), sessions
}

func TestRegisterDefaultsToAdopter(t *testing.T) {
	service, _ := newUserService(t)

	saved, err := service.Register(context.Background(), &domain.User{
		Subject:     "auth0|alice",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	require.Equal(t, domain.RoleAdopter, saved.Role)
	require.True(t, saved.Role.CanAdopt())
	require.False(t, saved.Role.CanPublishListings())
}

func TestRegisterProviderRole(t *testing.T) {
	service, _ := newUserService(t)

	saved, err := service.Register(context.Background(), &domain.User{
		Subject:     "auth0|groomer",
		DisplayName: "Groomer Gus",
		Role:        domain.RoleProvider,
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleProvider, saved.Role)
	// Service providers book appointments elsewhere; they neither list nor adopt here.
	require.False(t, saved.Role.CanAdopt())
	require.False(t, saved.Role.CanPublishListings())
}

func TestRegisterValidation(t *testing.T) {
	service, _ := newUserService(t)

	_, err := service.Register(context.Background(), &domain.User{DisplayName: "Alice"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptySubject)

	_, err = service.Register(context.Background(), &domain.User{Subject: "auth0|alice"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyDisplayName)

	_, err = service.Register(context.Background(), &domain.User{
		Subject:     "auth0|alice",
		DisplayName: "Alice",
		Role:        "superuser",
	})
	require.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestLoginIssuesSession(t *testing.T) {
	service, _ := newUserService(t)
	registered, err := service.Register(context.Background(), &domain.User{
		Subject:     "auth0|bob",
		DisplayName: "Bob",
		Role:        domain.RoleRehomer,
	})
	require.NoError(t, err)

	token, user, err := service.Login(context.Background(), " auth0|bob ")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, registered.ID, user.ID)

	resolved, err := service.ResolveSession(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, registered.ID, resolved.ID)
}

func TestLoginUnknownSubject(t *testing.T) {
	service, _ := newUserService(t)
	_, _, err := service.Login(context.Background(), "auth0|nobody")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestLoginEmptySubject(t *testing.T) {
	service, _ := newUserService(t)
	_, _, err := service.Login(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	service, _ := newUserService(t)
	_, err := service.Register(context.Background(), &domain.User{Subject: "auth0|carol", DisplayName: "Carol"})
	require.NoError(t, err)
	token, _, err := service.Login(context.Background(), "auth0|carol")
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), token))
	_, err = service.ResolveSession(context.Background(), token)
	require.ErrorIs(t, err, ErrAuthentication)

	// Logging out without a token is a no-op.
	require.NoError(t, service.Logout(context.Background(), ""))
}

func TestResolveSessionExpiry(t *testing.T) {
	sessions := memory.NewSessionStore(time.Hour)
	now := time.Now()
	sessions.WithClock(func() time.Time { return now })
	service := NewService(memory.NewRepository(), sessions)

	_, err := service.Register(context.Background(), &domain.User{Subject: "auth0|dave", DisplayName: "Dave"})
	require.NoError(t, err)
	token, _, err := service.Login(context.Background(), "auth0|dave")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = service.ResolveSession(context.Background(), token)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestResolveSessionEmptyToken(t *testing.T) {
	service, _ := newUserService(t)
	_, err := service.ResolveSession(context.Background(), "  ")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestDuplicateSubject(t *testing.T) {
	service, _ := newUserService(t)
	_, err := service.Register(context.Background(), &domain.User{Subject: "auth0|dup", DisplayName: "One"})
	require.NoError(t, err)
	_, err = service.Register(context.Background(), &domain.User{Subject: "auth0|dup", DisplayName: "Two"})
	require.ErrorIs(t, err, ports.ErrDuplicateSubject)
}
