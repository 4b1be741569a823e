package dialog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kompisbot/kompis/pkg/domain"
	"github.com/kompisbot/kompis/pkg/ports"
)

// FeedbackNode closes a conversation by asking how it went. Closing persists
// the feedback record and always returns home.
type FeedbackNode struct {
	baseNode
	feedback ports.FeedbackStore
	logger   *slog.Logger
}

// NewFeedbackNode builds a feedback node writing to the given store.
func NewFeedbackNode(id string, feedback ports.FeedbackStore, logger *slog.Logger) *FeedbackNode {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FeedbackNode{
		baseNode: baseNode{id: id},
		feedback: feedback,
		logger:   logger,
	}
}

// Render shows the three-way mood prompt.
func (n *FeedbackNode) Render(session *domain.Session, msg domain.Message, prefix string) *domain.Payload {
	p := domain.NewPayload(msg.ChatID, fmt.Sprintf("%s%s, how it was?", prefix, msg.FirstName))
	p.Keyboard = [][]domain.Button{{
		{Label: "🙁", Action: ActionBadConversation},
		{Label: "😐", Action: ActionNormalConversation},
		{Label: "🙂", Action: ActionGoodConversation},
	}}
	return p
}

// LockedRender freezes the prompt with the recorded mood and no buttons.
func (n *FeedbackNode) LockedRender(session *domain.Session, action string) *domain.Payload {
	p := domain.NewPayload(session.ChatID, fmt.Sprintf("%s\n\nYou voted as %s", session.Text, voteSymbol(action)))
	p.MessageID = session.MessageID
	return p
}

// Normalize maps free-text moods onto the canonical tokens.
func (n *FeedbackNode) Normalize(raw string) string {
	switch strings.ToLower(raw) {
	case "good", "perfect":
		return ActionGoodConversation
	case "ok":
		return ActionNormalConversation
	case "terrible", "bad":
		return ActionBadConversation
	}
	return raw
}

func (n *FeedbackNode) IsExpected(action string) bool {
	switch action {
	case ActionBadConversation, ActionNormalConversation, ActionGoodConversation:
		return true
	}
	return false
}

// ComputeNext always terminates the conversation.
func (n *FeedbackNode) ComputeNext(context.Context, *domain.Session, domain.Message, string) (string, error) {
	return domain.HomeNodeID, nil
}

// OnClose persists the feedback keyed by chat, session and discussed topic.
// A session that never went through topic prediction has no topic attribute;
// in that case the record is skipped rather than failing the transition.
func (n *FeedbackNode) OnClose(ctx context.Context, session *domain.Session, _ domain.Message, action string) error {
	if n.feedback == nil {
		return nil
	}
	topic, ok := session.Attr(domain.AttrTopic)
	if !ok {
		n.logger.Warn("no topic attribute in session, skipping feedback record",
			"chat_id", session.ChatID,
			"session_id", session.ID,
		)
		return nil
	}
	if err := n.feedback.SaveFeedback(ctx, session.ChatID, session.ID, topic, action); err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}
	return nil
}
