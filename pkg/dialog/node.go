package dialog

import (
	"context"

	"github.com/kompisbot/kompis/pkg/domain"
)

// Node is one step in the conversation graph. Implementations are immutable
// configuration plus behavior; only the session carries mutable state.
type Node interface {
	// ID returns the node's registry identifier.
	ID() string

	// Render produces the content to show when this node becomes active.
	// A nil payload means the node never displays and only computes a
	// transition. The prefix is prepended verbatim (used for the apology
	// re-prompt on REPEAT).
	Render(session *domain.Session, msg domain.Message, prefix string) *domain.Payload

	// LockedRender produces the edit that freezes the previously sent message
	// once this node closes (buttons removed, chosen answer echoed). A nil
	// payload means no edit is performed.
	LockedRender(session *domain.Session, action string) *domain.Payload

	// Normalize canonicalizes raw input text into an action token.
	Normalize(raw string) string

	// IsExpected reports whether a normalized action is valid input here.
	IsExpected(action string) bool

	// ComputeNext returns the next node ID for a valid action. It may stash
	// values into the session attribute bag as a side channel.
	ComputeNext(ctx context.Context, session *domain.Session, msg domain.Message, action string) (string, error)

	// OnClose runs exactly once when this node is left after a confirmed
	// delivery of the next node's content.
	OnClose(ctx context.Context, session *domain.Session, msg domain.Message, action string) error
}

// Referencer is implemented by nodes whose outgoing node IDs are statically
// known. The offline consistency check uses it to verify that every
// referenced ID resolves in the registry.
type Referencer interface {
	References() []string
}

// baseNode supplies the default behavior shared by all variants: identity
// normalization, every action accepted, no locked render, no close effect.
type baseNode struct {
	id string
}

func (n baseNode) ID() string { return n.id }

func (n baseNode) Normalize(raw string) string { return raw }

func (n baseNode) IsExpected(string) bool { return true }

func (n baseNode) LockedRender(*domain.Session, string) *domain.Payload { return nil }

func (n baseNode) OnClose(context.Context, *domain.Session, domain.Message, string) error {
	return nil
}
