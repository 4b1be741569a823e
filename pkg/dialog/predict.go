package dialog

import (
	"context"
	"fmt"

	"github.com/kompisbot/kompis/pkg/domain"
	"github.com/kompisbot/kompis/pkg/ports"
)

// ConfirmNodePrefix derives the confirmation node ID for a topic label.
const ConfirmNodePrefix = "check_topic_prediction_"

// TopicPredictNode is a purely computational node: it never renders, and its
// only job is to classify the user's free text and route to the matching
// confirmation node. Any input is expected; there is no wrong answer to free
// text.
type TopicPredictNode struct {
	baseNode
	classifier ports.TopicClassifier
}

// NewTopicPredictNode builds the prediction node with the given classifier.
func NewTopicPredictNode(id string, classifier ports.TopicClassifier) *TopicPredictNode {
	return &TopicPredictNode{
		baseNode:   baseNode{id: id},
		classifier: classifier,
	}
}

// Render returns nil: this node only computes a transition.
func (n *TopicPredictNode) Render(*domain.Session, domain.Message, string) *domain.Payload {
	return nil
}

// ComputeNext classifies the message text, stashes the topic into the
// session attribute bag and returns the topic's confirmation node.
func (n *TopicPredictNode) ComputeNext(ctx context.Context, session *domain.Session, msg domain.Message, _ string) (string, error) {
	topic, err := n.classifier.Classify(ctx, msg.Text)
	if err != nil {
		return "", fmt.Errorf("classify message: %w", err)
	}
	session.SetAttr(domain.AttrTopic, topic)
	return ConfirmNodePrefix + topic, nil
}

// References lists the confirmation nodes reachable for the known topics.
func (n *TopicPredictNode) References() []string {
	refs := make([]string, 0, len(Topics))
	for _, topic := range Topics {
		refs = append(refs, ConfirmNodePrefix+topic)
	}
	return refs
}
