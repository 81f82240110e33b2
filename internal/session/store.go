package session

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/arthguru/finance-coach/internal/domain"
)

var (
	// ErrNotFound is returned for an unknown session ID.
	ErrNotFound = errors.New("session not found")

	// ErrTooManySessions is returned when the store is at capacity.
	ErrTooManySessions = errors.New("session limit reached")
)

// DefaultMaxSessions caps a store when no explicit limit is configured.
const DefaultMaxSessions = 100

// Store is an in-memory session registry, safe for concurrent use.
// Sessions live only as long as the process; there is no durable storage
// behind this.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
}

// NewStore creates a store capped at max sessions. A non-positive max
// uses DefaultMaxSessions.
func NewStore(max int) *Store {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &Store{
		sessions: make(map[string]*Session),
		max:      max,
	}
}

// Create registers a new session over a ledger.
func (s *Store) Create(ledger domain.Ledger, rng *rand.Rand) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.max {
		return nil, fmt.Errorf("create session: %w", ErrTooManySessions)
	}

	sess := New(ledger, rng)
	s.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns a live session by ID. The returned session serializes its
// own state; callers do not copy it.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("get session %s: %w", id, ErrNotFound)
	}
	return sess, nil
}

// Delete removes a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("delete session %s: %w", id, ErrNotFound)
	}
	delete(s.sessions, id)
	return nil
}

// Count reports the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
