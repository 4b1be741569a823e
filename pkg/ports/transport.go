package ports

import (
	"context"

	"github.com/kompisbot/kompis/pkg/domain"
)

// Messenger delivers outbound payloads to the chat platform.
//
// The engine never retries: a Send error aborts the transition with no state
// mutation, so a platform redelivery of the inbound event safely re-attempts
// the identical transition.
type Messenger interface {
	// Send posts a new message and reports the delivered id and text.
	Send(ctx context.Context, payload *domain.Payload) (domain.SentMessage, error)

	// Edit rewrites a previously sent message (payload.MessageID must be set).
	// Used to lock messages whose buttons are no longer valid; failures are
	// reported but do not abort a transition.
	Edit(ctx context.Context, payload *domain.Payload) error
}
