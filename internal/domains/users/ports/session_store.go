package ports

import (
	"context"
	"errors"
)

// ErrSessionNotFound indicates an unknown or expired session token.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore abstracts bearer session persistence, keyed by token.
type SessionStore interface {
	Save(ctx context.Context, token string, userID int64) error
	// Resolve returns the user owning the token, or ErrSessionNotFound when
	// the token is unknown or expired.
	Resolve(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

// NoopSessionStore is a safe default when callers do not need session persistence.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(_ context.Context, _ string, _ int64) error { return nil }
func (noopSessionStore) Resolve(_ context.Context, _ string) (int64, error) {
	return 0, ErrSessionNotFound
}
func (noopSessionStore) Delete(_ context.Context, _ string) error { return nil }
