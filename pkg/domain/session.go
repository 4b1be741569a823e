package domain

import "github.com/google/uuid"

// Session represents the per-chat conversation state.
//
// The session is the only mutable state in the engine: nodes are immutable
// configuration, and everything a node wants to communicate to a later node
// travels through the Attributes bag.
type Session struct {
	// ChatID identifies the chat this session belongs to. One session per chat.
	ChatID string `json:"chat_id"`

	// ID is a unique identifier for this conversation instance. Stores use it
	// as a fencing token: conditional updates and deletes only apply while the
	// persisted session still carries the same ID.
	ID string `json:"session_id"`

	// NodeID is the identifier of the currently active node. It must always
	// resolve in the node registry.
	NodeID string `json:"node_id"`

	// MessageID and Text describe the last message the bot sent for this
	// session. They are needed to lock (edit) that message when the node closes.
	MessageID int    `json:"message_id"`
	Text      string `json:"text"`

	// Attributes is a free-form string bag threaded between nodes: a detected
	// topic, a postal code, resolved municipality links. Any node may read what
	// an earlier node wrote.
	Attributes map[string]string `json:"attributes"`
}

// NewSession creates a fresh session for a chat, positioned at the given node.
func NewSession(chatID, nodeID string) *Session {
	return &Session{
		ChatID:     chatID,
		ID:         uuid.NewString(),
		NodeID:     nodeID,
		Attributes: make(map[string]string),
	}
}

// Attr returns the value of a session attribute and whether it is set.
func (s *Session) Attr(key string) (string, bool) {
	if s.Attributes == nil {
		return "", false
	}
	v, ok := s.Attributes[key]
	return v, ok
}

// SetAttr writes a session attribute, allocating the bag if needed.
func (s *Session) SetAttr(key, value string) {
	if s.Attributes == nil {
		s.Attributes = make(map[string]string)
	}
	s.Attributes[key] = value
}

// Clone returns a copy of the session with a deep-copied attribute bag, so
// stores can hand out snapshots that callers may mutate safely.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Attributes = make(map[string]string, len(s.Attributes))
	for k, v := range s.Attributes {
		cp.Attributes[k] = v
	}
	return &cp
}
