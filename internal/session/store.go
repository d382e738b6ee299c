// Package session owns the process-scoped authentication state.
//
// The Store is the single writer of session state; everything else
// (route guard, views) reads it through Snapshot. Authority lives
// server-side on the ambient cookie — nothing here is persisted.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/spendgenie/genie/internal/api"
)

// Session is the locally cached authentication state. Username is
// empty whenever Authenticated is false.
type Session struct {
	Username      string
	Authenticated bool
}

// Store holds the session and its loading flag. The write surface is
// exactly Initialize, Login and Logout.
type Store struct {
	backend     api.Backend
	session     Session
	mu          sync.Mutex
	loading     bool
	initialized bool
}

// NewStore creates a store in the loading state; nothing is known about
// the session until Initialize has settled.
func NewStore(backend api.Backend) *Store {
	return &Store{
		backend: backend,
		loading: true,
	}
}

// Initialize queries the backend auth status exactly once. Any failure
// is downgraded silently to "not logged in" — logged, never surfaced.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return
	}
	s.initialized = true
	s.mu.Unlock()

	status, err := s.backend.AuthStatus(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		slog.Debug("Auth check failed, treating as unauthenticated", "error", err)
		s.session = Session{}
		return
	}

	if status.Authenticated {
		s.session = Session{Authenticated: true, Username: status.Username}
	} else {
		s.session = Session{}
	}
}

// Login records a successful credential exchange performed elsewhere.
func (s *Store) Login(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{Authenticated: true, Username: username}
	s.loading = false
}

// Logout calls the backend logout endpoint and clears the local state
// regardless of the outcome. The real guarantee — protected views are
// no longer reachable — is enforced by the route guard on the next
// check, so a network failure here is logged, not surfaced.
func (s *Store) Logout(ctx context.Context) {
	if err := s.backend.Logout(ctx); err != nil {
		slog.Warn("Logout request failed, clearing local session anyway", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
}

// Snapshot returns the current session and whether the initial auth
// check is still in flight.
func (s *Store) Snapshot() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.loading
}
