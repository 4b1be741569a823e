package domain

// Button is one inline keyboard entry. Exactly one of Action or URL is set:
// action buttons echo their value back as a callback, URL buttons open a link
// and never cause a transition.
type Button struct {
	Label  string `json:"label"`
	Action string `json:"action,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Payload is the content of one outbound message: the text to show and the
// inline keyboard laid out as rows of buttons.
//
// An empty keyboard must still be sent as one explicit empty row; the chat
// platform treats a missing keyboard and an empty keyboard differently when
// editing a previously sent message.
type Payload struct {
	ChatID string `json:"chat_id"`
	// MessageID is set only for edits (locking a previously sent message).
	MessageID int        `json:"message_id,omitempty"`
	Text      string     `json:"text"`
	Keyboard  [][]Button `json:"keyboard"`
}

// NewPayload builds a payload with the mandatory empty keyboard row.
func NewPayload(chatID, text string) *Payload {
	return &Payload{
		ChatID:   chatID,
		Text:     text,
		Keyboard: [][]Button{{}},
	}
}

// SentMessage is what the transport reports after a successful delivery.
// The driver persists both fields so the message can be edited later.
type SentMessage struct {
	MessageID int
	Text      string
}
