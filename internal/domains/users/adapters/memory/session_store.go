package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pawhaven/adopt-api/internal/domains/users/ports"
)

// SessionStore is an in-memory SessionStore implementation with TTL expiry.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session
	ttl      time.Duration
	now      func() time.Time
}

type session struct {
	userID    int64
	expiresAt time.Time
}

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 24 * time.Hour

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock overrides the time source for tests.
func (s *SessionStore) WithClock(now func() time.Time) *SessionStore {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *SessionStore) Save(_ context.Context, token string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session{userID: userID, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *SessionStore) Resolve(_ context.Context, token string) (int64, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok || s.now().After(sess.expiresAt) {
		return 0, ports.ErrSessionNotFound
	}
	return sess.userID, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
