// Package kompis is the high-level entry point for the conversation
// engine. It wires the node registry, the declarative conversation
// files and the session store into a bot that answers one message at a
// time.
package kompis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kompisbot/kompis/internal/engine"
	"github.com/kompisbot/kompis/internal/logging"
	"github.com/kompisbot/kompis/pkg/adapters/memory"
	"github.com/kompisbot/kompis/pkg/dialog"
	"github.com/kompisbot/kompis/pkg/domain"
	"github.com/kompisbot/kompis/pkg/ports"
	"github.com/kompisbot/kompis/pkg/topics"
)

// Bot wraps the internal driver and provides a simplified API for
// consumers: build it once, then feed it messages.
type Bot struct {
	driver   *engine.Driver
	registry *dialog.Registry

	logger     *slog.Logger
	store      ports.SessionStore
	messenger  ports.Messenger
	classifier ports.TopicClassifier
	index      ports.MunicipalityIndex
	votes      ports.VoteStore
	feedback   ports.FeedbackStore
	registerer prometheus.Registerer

	flowPaths       []string
	initialNodeID   string
	confirmRejectID string
}

// Option configures the Bot.
type Option func(*Bot)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) { b.logger = logger }
}

// WithSessionStore injects the session backend. Defaults to the
// in-memory store.
func WithSessionStore(store ports.SessionStore) Option {
	return func(b *Bot) { b.store = store }
}

// WithClassifier injects the topic classifier.
func WithClassifier(c ports.TopicClassifier) Option {
	return func(b *Bot) { b.classifier = c }
}

// WithMunicipalityIndex injects the postal code index used by postal
// lookup nodes.
func WithMunicipalityIndex(idx ports.MunicipalityIndex) Option {
	return func(b *Bot) { b.index = idx }
}

// WithVoteStore injects the store recording confirmation votes.
func WithVoteStore(v ports.VoteStore) Option {
	return func(b *Bot) { b.votes = v }
}

// WithFeedbackStore injects the store recording end-of-conversation
// feedback.
func WithFeedbackStore(f ports.FeedbackStore) Option {
	return func(b *Bot) { b.feedback = f }
}

// WithFlows adds conversation files to load into the registry.
func WithFlows(paths ...string) Option {
	return func(b *Bot) { b.flowPaths = append(b.flowPaths, paths...) }
}

// WithInitialNode overrides the node new conversations start at.
func WithInitialNode(nodeID string) Option {
	return func(b *Bot) { b.initialNodeID = nodeID }
}

// WithConfirmRejectNode routes rejected topic predictions to the given
// node instead of ending the conversation.
func WithConfirmRejectNode(nodeID string) Option {
	return func(b *Bot) { b.confirmRejectID = nodeID }
}

// WithMetrics registers the engine's Prometheus instruments on the
// given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(b *Bot) { b.registerer = reg }
}

// New builds a Bot around the given outbound messenger.
func New(messenger ports.Messenger, opts ...Option) (*Bot, error) {
	if messenger == nil {
		return nil, fmt.Errorf("a messenger is required")
	}

	b := &Bot{messenger: messenger}
	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	if b.store == nil {
		b.store = memory.NewStore()
	}
	if b.classifier == nil {
		b.classifier = topics.NewClassifier()
	}

	b.registry = dialog.NewRegistry(b.logger)
	dialog.RegisterBuiltins(b.registry, dialog.BuiltinDeps{
		Classifier:          b.classifier,
		Votes:               b.votes,
		Feedback:            b.feedback,
		Logger:              b.logger,
		ConfirmRejectNodeID: b.confirmRejectID,
	})

	if len(b.flowPaths) > 0 {
		loader := &dialog.Loader{Index: b.index}
		if err := loader.Load(b.registry, b.flowPaths...); err != nil {
			return nil, err
		}
	}

	driverOpts := []engine.Option{engine.WithLogger(b.logger)}
	if b.initialNodeID != "" {
		driverOpts = append(driverOpts, engine.WithInitialNode(b.initialNodeID))
	}
	if b.registerer != nil {
		driverOpts = append(driverOpts, engine.WithMetrics(engine.NewMetrics(b.registerer)))
	}

	b.driver = engine.New(b.registry, b.store, messenger, driverOpts...)
	return b, nil
}

// Advance processes one inbound message.
func (b *Bot) Advance(ctx context.Context, msg domain.Message) error {
	return b.driver.Advance(ctx, msg)
}

// Reset deletes the chat's active session, if any.
func (b *Bot) Reset(ctx context.Context, chatID string) error {
	return b.driver.Reset(ctx, chatID)
}

// Registry exposes the built node registry, mainly for the offline
// consistency check.
func (b *Bot) Registry() *dialog.Registry {
	return b.registry
}
