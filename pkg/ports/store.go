package ports

import (
	"context"

	"github.com/kompisbot/kompis/pkg/domain"
)

// SessionStore defines the interface for persisting conversation state.
//
// The engine takes no in-process lock around a transition: at most one
// transition per chat is in flight because each inbound event is handled by
// one invocation. Correctness against platform redeliveries and replica races
// relies on Update and Delete being conditional on the session ID still
// matching what the caller loaded.
type SessionStore interface {
	// Load retrieves the session for a chat.
	// Returns domain.ErrSessionNotFound if the chat has no session.
	Load(ctx context.Context, chatID string) (*domain.Session, error)

	// Create persists a brand new session.
	Create(ctx context.Context, session *domain.Session) error

	// Update overwrites the persisted session if and only if the stored
	// session still carries the same session ID.
	// Returns domain.ErrStaleSession otherwise.
	Update(ctx context.Context, session *domain.Session) error

	// Delete removes the session if the stored session still carries the same
	// session ID. Returns domain.ErrStaleSession otherwise. Deleting a session
	// that no longer exists is not an error.
	Delete(ctx context.Context, session *domain.Session) error
}
