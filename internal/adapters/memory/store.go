// Package memory implements an in-process session store, used by tests and
// single-instance development runs.
package memory

import (
	"context"
	"sync"

	"github.com/sakenomibu/nomibot/pkg/domain"
)

// Store implements ports.SessionStore over a mutex-guarded map.
type Store struct {
	mu           sync.Mutex
	sessions     map[string]*domain.Session
	entryPhaseID string
}

// New creates an empty in-memory store. Fresh sessions start at entryPhaseID.
func New(entryPhaseID string) *Store {
	return &Store{
		sessions:     make(map[string]*domain.Session),
		entryPhaseID: entryPhaseID,
	}
}

// Get returns the stored session or domain.ErrSessionNotFound.
func (s *Store) Get(ctx context.Context, userID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// GetOrCreate returns the stored session or initializes a fresh one.
func (s *Store) GetOrCreate(ctx context.Context, userID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[userID]; ok {
		return session.Clone(), nil
	}
	fresh := domain.NewSession(userID, s.entryPhaseID)
	s.sessions[userID] = fresh.Clone()
	return fresh, nil
}

// Merge applies a partial update, creating the document if absent.
func (s *Store) Merge(ctx context.Context, userID string, update domain.SessionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		session = domain.NewSession(userID, s.entryPhaseID)
		s.sessions[userID] = session
	}
	update.Apply(session)
	return nil
}

// Delete removes the session document.
func (s *Store) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
