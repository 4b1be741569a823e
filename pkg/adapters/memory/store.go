// Package memory provides an in-memory ports.SessionStore, used by tests and
// the local chat loop.
package memory

import (
	"context"
	"sync"

	"github.com/kompisbot/kompis/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*domain.Session),
	}
}

// Load retrieves the session for a chat. The returned session is a snapshot;
// mutating it does not touch the store.
func (s *Store) Load(ctx context.Context, chatID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[chatID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Create persists a brand new session.
func (s *Store) Create(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ChatID] = session.Clone()
	return nil
}

// Update overwrites the session iff the stored one still carries the same ID.
func (s *Store) Update(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[session.ChatID]
	if !ok || current.ID != session.ID {
		return domain.ErrStaleSession
	}
	s.sessions[session.ChatID] = session.Clone()
	return nil
}

// Delete removes the session iff the stored one still carries the same ID.
// Deleting an absent session is a no-op.
func (s *Store) Delete(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[session.ChatID]
	if !ok {
		return nil
	}
	if current.ID != session.ID {
		return domain.ErrStaleSession
	}
	delete(s.sessions, session.ChatID)
	return nil
}
