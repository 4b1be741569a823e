package domain

// MessageKind distinguishes how the user produced the inbound action.
type MessageKind string

const (
	// KindMessage is a plain text message typed by the user.
	KindMessage MessageKind = "message"
	// KindCallback is a button press; Text carries the button's action value.
	KindCallback MessageKind = "callback"
)

// Message is a platform event translated into a normalized action value.
// The transport layer builds it; the engine never sees raw platform payloads.
type Message struct {
	Kind      MessageKind
	ChatID    string
	FirstName string
	// MessageID is the platform id of the inbound message, when present.
	// Callback presses have no message of their own.
	MessageID int
	// Text is the typed text or the pressed button's action value.
	Text string
}
