package dialog

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/kompisbot/kompis/pkg/domain"
	"github.com/kompisbot/kompis/pkg/ports"
)

// Registry maps node IDs to node instances. It is built once at startup
// (built-in nodes first, then declarative nodes from conversation files) and
// is read-only afterwards, so unsynchronized concurrent reads across chats
// are safe.
type Registry struct {
	nodes  map[string]Node
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		nodes:  make(map[string]Node),
		logger: logger,
	}
}

// Register adds a node under its own ID. A later registration for an ID that
// already exists replaces the earlier one; the override is logged because it
// is usually an authoring mistake, but it is intentionally not forbidden:
// conversation files layered over built-ins rely on it.
func (r *Registry) Register(node Node) {
	if _, exists := r.nodes[node.ID()]; exists {
		r.logger.Warn("node redefined, later definition wins", "node", node.ID())
	}
	r.nodes[node.ID()] = node
}

// Get resolves a node ID. A miss is a hard error: there is no runtime
// fallback for a dangling reference.
func (r *Registry) Get(id string) (Node, error) {
	node, ok := r.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, id)
	}
	return node, nil
}

// Has reports whether an ID resolves.
func (r *Registry) Has(id string) bool {
	_, ok := r.nodes[id]
	return ok
}

// IDs returns all registered node IDs in deterministic order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// BuiltinDeps carries the collaborators the built-in nodes need.
type BuiltinDeps struct {
	Classifier ports.TopicClassifier
	Votes      ports.VoteStore
	Feedback   ports.FeedbackStore
	Logger     *slog.Logger

	// ConfirmRejectNodeID is where a rejected topic prediction routes, usually
	// back to topic selection. Empty terminates the conversation instead.
	ConfirmRejectNodeID string
}

// Built-in node IDs.
const (
	PredictNodeID  = "make_topic_prediction"
	FeedbackNodeID = "feedback"
)

// RegisterBuiltins registers the nodes implemented in code: the topic
// prediction node, one confirmation node per topic and the terminal feedback
// node. Topic head nodes and everything else come from conversation files.
func RegisterBuiltins(reg *Registry, deps BuiltinDeps) {
	reg.Register(NewTopicPredictNode(PredictNodeID, deps.Classifier))
	for _, topic := range Topics {
		reg.Register(NewTopicConfirmNode(ConfirmNodePrefix+topic, topic, deps.ConfirmRejectNodeID, deps.Votes))
	}
	reg.Register(NewFeedbackNode(FeedbackNodeID, deps.Feedback, deps.Logger))
}
