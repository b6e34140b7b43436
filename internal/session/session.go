// Package session keeps the authenticated-user sessions issued after login.
// Handlers receive a Provider through their constructors; nothing here is
// global.
package session

import (
	"context"
	"sync"
	"time"

	"daurulang/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Provider issues and resolves bearer-token sessions.
type Provider interface {
	// Create issues a new session for user.
	Create(user model.User) model.Session

	// Get resolves a token. Expired or unknown tokens report false.
	Get(token string) (model.Session, bool)

	// Revoke ends a session. Revoking an unknown token is a no-op.
	Revoke(token string)
}

// Store is an in-memory Provider with a background sweeper for expired sessions.
type Store struct {
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	logger   zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]model.Session

	cancel context.CancelFunc
	done   chan struct{}
}

// NewStore creates a store whose sessions live for ttl. Call Start to begin
// sweeping expired sessions every interval.
func NewStore(ttl, interval time.Duration, logger zerolog.Logger) *Store {
	return &Store{
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
		logger:   logger.With().Str("component", "session-store").Logger(),
		sessions: make(map[string]model.Session),
	}
}

// Start launches the sweeper. It stops when ctx is cancelled or Close is called.
func (s *Store) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					s.logger.Debug().Int("expired", n).Msg("expired sessions removed")
				}
			}
		}
	}()

	s.logger.Info().Dur("ttl", s.ttl).Dur("sweep_interval", s.interval).Msg("session store started")
}

// Close stops the sweeper and waits for it to exit.
func (s *Store) Close() error {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	s.logger.Info().Msg("session store closed")
	return nil
}

// Create issues a new session for user.
func (s *Store) Create(user model.User) model.Session {
	sess := model.Session{
		Token:     uuid.NewString(),
		User:      user,
		ExpiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()

	return sess
}

// Get resolves a token.
func (s *Store) Get(token string) (model.Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok || sess.Expired(s.now()) {
		return model.Session{}, false
	}
	return sess, true
}

// Revoke ends a session.
func (s *Store) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Sweep removes expired sessions and reports how many were dropped.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

type contextKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(contextKey{}).(model.User)
	return user, ok
}
