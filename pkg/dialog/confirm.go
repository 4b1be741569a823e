package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/kompisbot/kompis/pkg/domain"
	"github.com/kompisbot/kompis/pkg/ports"
)

// TopicHeadPrefix derives the head node ID for a confirmed topic.
const TopicHeadPrefix = "head_topic_"

// TopicConfirmNode asks the user to confirm a predicted topic with a closed
// {good_answer, bad_answer} choice set. Closing the node persists the vote.
type TopicConfirmNode struct {
	baseNode
	topic string
	// rejectNodeID is where a bad_answer goes. Empty means the conversation
	// terminates (HOME). Which behavior is wanted has changed across bot
	// generations, so it is configuration rather than code.
	rejectNodeID string
	votes        ports.VoteStore
}

// NewTopicConfirmNode builds the confirmation node for one topic.
func NewTopicConfirmNode(id, topic, rejectNodeID string, votes ports.VoteStore) *TopicConfirmNode {
	return &TopicConfirmNode{
		baseNode:     baseNode{id: id},
		topic:        topic,
		rejectNodeID: rejectNodeID,
		votes:        votes,
	}
}

// Topic returns the topic label this node confirms.
func (n *TopicConfirmNode) Topic() string { return n.topic }

// Render shows the predicted topic with thumbs up/down buttons whose action
// values are the canonical tokens themselves.
func (n *TopicConfirmNode) Render(session *domain.Session, msg domain.Message, prefix string) *domain.Payload {
	p := domain.NewPayload(msg.ChatID, fmt.Sprintf("%s%s, you want to talk about: %s", prefix, msg.FirstName, n.topic))
	p.Keyboard = [][]domain.Button{{
		{Label: "👍", Action: ActionGoodAnswer},
		{Label: "👎", Action: ActionBadAnswer},
	}}
	return p
}

// LockedRender freezes the prompt with the recorded vote and no buttons.
func (n *TopicConfirmNode) LockedRender(session *domain.Session, action string) *domain.Payload {
	p := domain.NewPayload(session.ChatID, fmt.Sprintf("%s\n\nYou voted as %s", session.Text, voteSymbol(action)))
	p.MessageID = session.MessageID
	return p
}

// Normalize maps free-text confirmations onto the canonical tokens. Anything
// unrecognized passes through and will fail IsExpected.
func (n *TopicConfirmNode) Normalize(raw string) string {
	switch strings.ToLower(raw) {
	case "yes":
		return ActionGoodAnswer
	case "no":
		return ActionBadAnswer
	}
	return raw
}

func (n *TopicConfirmNode) IsExpected(action string) bool {
	return action == ActionGoodAnswer || action == ActionBadAnswer
}

// ComputeNext routes a confirmed topic to its head node and a rejected one to
// the configured reject target, falling back to conversation termination.
func (n *TopicConfirmNode) ComputeNext(_ context.Context, _ *domain.Session, _ domain.Message, action string) (string, error) {
	if action == ActionBadAnswer {
		if n.rejectNodeID != "" {
			return n.rejectNodeID, nil
		}
		return domain.HomeNodeID, nil
	}
	return TopicHeadPrefix + n.topic, nil
}

// OnClose persists the vote, keyed by the chat and the voted-on message.
// Voting is an audit concern; without a store the vote is simply not kept.
func (n *TopicConfirmNode) OnClose(ctx context.Context, session *domain.Session, _ domain.Message, action string) error {
	if n.votes == nil {
		return nil
	}
	if err := n.votes.SaveVote(ctx, session.ChatID, session.MessageID, action); err != nil {
		return fmt.Errorf("save vote: %w", err)
	}
	return nil
}

// References lists the statically known outgoing node IDs.
func (n *TopicConfirmNode) References() []string {
	refs := []string{TopicHeadPrefix + n.topic}
	if n.rejectNodeID != "" {
		refs = append(refs, n.rejectNodeID)
	}
	return refs
}
