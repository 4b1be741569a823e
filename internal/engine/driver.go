package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kompisbot/kompis/internal/logging"
	"github.com/kompisbot/kompis/pkg/dialog"
	"github.com/kompisbot/kompis/pkg/domain"
	"github.com/kompisbot/kompis/pkg/ports"
)

// apologyPrefix is prepended to the re-prompt after an unexpected action.
const apologyPrefix = "Sorry, I didn't recognize your answer. Could you repeat?\n\n"

// DefaultInitialNodeID is where new conversations start unless configured
// otherwise.
const DefaultInitialNodeID = "static_topic"

// System commands handled outside the node graph.
const (
	cmdStart = "/start"
	cmdHelp  = "/help"
	cmdReset = "/reset"
)

// Driver orchestrates one conversation transition at a time: normalization,
// validation, next-node computation and the close/lock/persist sequence. It
// is logically single-threaded per chat; concurrent replicas are fenced by
// the session store's conditional writes, not by in-process locks.
type Driver struct {
	registry      *dialog.Registry
	store         ports.SessionStore
	messenger     ports.Messenger
	logger        *slog.Logger
	metrics       *Metrics
	initialNodeID string
}

// Option configures the Driver.
type Option func(*Driver)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) { d.logger = logger }
}

// WithMetrics attaches Prometheus instruments.
func WithMetrics(m *Metrics) Option {
	return func(d *Driver) { d.metrics = m }
}

// WithInitialNode overrides the node new conversations start at.
func WithInitialNode(nodeID string) Option {
	return func(d *Driver) { d.initialNodeID = nodeID }
}

// New creates a Driver over an already built registry.
func New(registry *dialog.Registry, store ports.SessionStore, messenger ports.Messenger, opts ...Option) *Driver {
	d := &Driver{
		registry:      registry,
		store:         store,
		messenger:     messenger,
		logger:        logging.NewNop(),
		initialNodeID: DefaultInitialNodeID,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Advance processes one inbound message for its chat: it either starts a new
// conversation, repeats the active prompt, terminates the conversation, or
// moves the session to the next node.
//
// A failed outbound delivery is reported locally and aborts the transition
// with no state mutation, so a platform redelivery of the same event safely
// re-attempts it.
func (d *Driver) Advance(ctx context.Context, msg domain.Message) error {
	text := strings.TrimSpace(msg.Text)

	if text == cmdReset {
		return d.Reset(ctx, msg.ChatID)
	}

	session, err := d.store.Load(ctx, msg.ChatID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		if text == cmdStart || text == cmdHelp {
			// Nothing to do outside a conversation; the next real message
			// starts one.
			return nil
		}
		return d.startConversation(ctx, msg)
	}
	if err != nil {
		return fmt.Errorf("load session for chat %s: %w", msg.ChatID, err)
	}

	return d.advanceSession(ctx, msg, session)
}

// Reset deletes the chat's session unconditionally. Missing sessions are fine.
func (d *Driver) Reset(ctx context.Context, chatID string) error {
	session, err := d.store.Load(ctx, chatID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session for chat %s: %w", chatID, err)
	}
	if err := d.store.Delete(ctx, session); err != nil && !errors.Is(err, domain.ErrStaleSession) {
		return fmt.Errorf("delete session for chat %s: %w", chatID, err)
	}
	d.logger.Info("session reset", "chat_id", chatID)
	return nil
}

// startConversation seeds the initial node, bootstraps through any purely
// computational nodes, and persists the session only after a successful send.
func (d *Driver) startConversation(ctx context.Context, msg domain.Message) error {
	session := domain.NewSession(msg.ChatID, d.initialNodeID)
	if msg.FirstName != "" {
		session.SetAttr(domain.AttrFirstName, msg.FirstName)
	}

	nodeID, payload, err := d.resolveDisplayable(ctx, session, msg, d.initialNodeID, "")
	if err != nil {
		return fmt.Errorf("bootstrap conversation for chat %s: %w", msg.ChatID, err)
	}

	sent, err := d.messenger.Send(ctx, payload)
	if err != nil {
		d.reportSendFailure(msg.ChatID, nodeID, err)
		return nil
	}

	session.NodeID = nodeID
	session.MessageID = sent.MessageID
	session.Text = sent.Text
	if err := d.store.Create(ctx, session); err != nil {
		return fmt.Errorf("create session for chat %s: %w", msg.ChatID, err)
	}

	d.metrics.observe(outcomeStart)
	d.logger.Info("conversation started", "chat_id", msg.ChatID, "node", nodeID)
	return nil
}

func (d *Driver) advanceSession(ctx context.Context, msg domain.Message, session *domain.Session) error {
	node, err := d.registry.Get(session.NodeID)
	if err != nil {
		return fmt.Errorf("resolve active node for chat %s: %w", msg.ChatID, err)
	}

	action := node.Normalize(strings.TrimSpace(msg.Text))
	if !node.IsExpected(action) {
		return d.repeat(ctx, msg, session, node)
	}

	next, err := node.ComputeNext(ctx, session, msg, action)
	if err != nil {
		return fmt.Errorf("compute next node from %s: %w", session.NodeID, err)
	}

	switch next {
	case domain.RepeatNodeID:
		return d.repeat(ctx, msg, session, node)
	case domain.HomeNodeID:
		return d.goHome(ctx, msg, session, node, action)
	default:
		return d.transition(ctx, msg, session, node, action, next)
	}
}

// repeat re-prompts the active node with an apology and, as a compensating
// action, re-locks the previous outbound message back to its original
// content. The session's node does not change and the node is not closed.
func (d *Driver) repeat(ctx context.Context, msg domain.Message, session *domain.Session, node dialog.Node) error {
	payload := node.Render(session, msg, apologyPrefix)
	if payload == nil {
		return fmt.Errorf("node %s rejected input but has nothing to re-prompt", node.ID())
	}

	sent, err := d.messenger.Send(ctx, payload)
	if err != nil {
		d.reportSendFailure(msg.ChatID, node.ID(), err)
		return nil
	}

	d.relock(ctx, session)

	session.MessageID = sent.MessageID
	session.Text = sent.Text
	if err := d.store.Update(ctx, session); err != nil {
		if errors.Is(err, domain.ErrStaleSession) {
			d.logger.Warn("lost session race on repeat", "chat_id", session.ChatID)
			return nil
		}
		return fmt.Errorf("update session for chat %s: %w", session.ChatID, err)
	}

	d.metrics.observe(outcomeRepeat)
	d.logger.Debug("unexpected action, re-prompted", "chat_id", session.ChatID, "node", node.ID())
	return nil
}

// goHome terminates the conversation: close the active node, freeze its
// message and delete the session.
func (d *Driver) goHome(ctx context.Context, msg domain.Message, session *domain.Session, node dialog.Node, action string) error {
	d.closeNode(ctx, msg, session, node, action)

	if err := d.store.Delete(ctx, session); err != nil {
		if errors.Is(err, domain.ErrStaleSession) {
			d.logger.Warn("lost session race on termination", "chat_id", session.ChatID)
			return nil
		}
		return fmt.Errorf("delete session for chat %s: %w", session.ChatID, err)
	}

	d.metrics.observe(outcomeHome)
	d.logger.Info("conversation finished", "chat_id", session.ChatID, "node", node.ID())
	return nil
}

// transition renders and sends the next node's prompt; only after confirmed
// delivery does it close the active node, lock its message and advance the
// persisted session.
func (d *Driver) transition(ctx context.Context, msg domain.Message, session *domain.Session, node dialog.Node, action, nextID string) error {
	resolvedID, payload, err := d.resolveDisplayable(ctx, session, msg, nextID, "")
	if err != nil {
		return fmt.Errorf("resolve next node from %s: %w", session.NodeID, err)
	}

	sent, err := d.messenger.Send(ctx, payload)
	if err != nil {
		d.reportSendFailure(session.ChatID, resolvedID, err)
		return nil
	}

	d.closeNode(ctx, msg, session, node, action)

	session.NodeID = resolvedID
	session.MessageID = sent.MessageID
	session.Text = sent.Text
	if err := d.store.Update(ctx, session); err != nil {
		if errors.Is(err, domain.ErrStaleSession) {
			d.logger.Warn("lost session race on transition", "chat_id", session.ChatID)
			return nil
		}
		return fmt.Errorf("update session for chat %s: %w", session.ChatID, err)
	}

	d.metrics.observe(outcomeAdvance)
	d.logger.Debug("transition",
		"chat_id", session.ChatID,
		"from", node.ID(),
		"to", resolvedID,
	)
	return nil
}

// resolveDisplayable follows ComputeNext through non-rendering nodes (topic
// prediction and friends) until it reaches one that produces content. The
// walk is bounded by the registry size so a miswired graph cannot loop
// forever.
func (d *Driver) resolveDisplayable(ctx context.Context, session *domain.Session, msg domain.Message, nodeID, prefix string) (string, *domain.Payload, error) {
	for hops := 0; hops <= d.registry.Len(); hops++ {
		node, err := d.registry.Get(nodeID)
		if err != nil {
			return "", nil, err
		}

		if payload := node.Render(session, msg, prefix); payload != nil {
			return nodeID, payload, nil
		}

		action := node.Normalize(strings.TrimSpace(msg.Text))
		next, err := node.ComputeNext(ctx, session, msg, action)
		if err != nil {
			return "", nil, fmt.Errorf("compute next node from %s: %w", nodeID, err)
		}
		if next == domain.RepeatNodeID || next == domain.HomeNodeID {
			return "", nil, fmt.Errorf("non-rendering node %s returned sentinel %s", nodeID, next)
		}
		nodeID = next
	}
	return "", nil, fmt.Errorf("no displayable node reached from %s", nodeID)
}

// closeNode runs the node's close hook and freezes its last message. Both are
// best-effort at this point: the next prompt is already delivered, so a
// failing side effect is logged rather than failing the transition.
func (d *Driver) closeNode(ctx context.Context, msg domain.Message, session *domain.Session, node dialog.Node, action string) {
	if err := node.OnClose(ctx, session, msg, action); err != nil {
		d.logger.Warn("close hook failed",
			"chat_id", session.ChatID,
			"node", node.ID(),
			"err", err,
		)
	}

	if lock := node.LockedRender(session, action); lock != nil {
		if err := d.messenger.Edit(ctx, lock); err != nil {
			d.logger.Warn("failed to lock message",
				"chat_id", session.ChatID,
				"message_id", lock.MessageID,
				"err", err,
			)
		}
	}
}

// relock restores the previously sent message to its original content,
// undoing any partial edit before the re-prompt takes over.
func (d *Driver) relock(ctx context.Context, session *domain.Session) {
	if session.MessageID == 0 {
		return
	}
	restore := domain.NewPayload(session.ChatID, session.Text)
	restore.MessageID = session.MessageID
	if err := d.messenger.Edit(ctx, restore); err != nil {
		d.logger.Warn("failed to restore previous message",
			"chat_id", session.ChatID,
			"message_id", session.MessageID,
			"err", err,
		)
	}
}

func (d *Driver) reportSendFailure(chatID, nodeID string, err error) {
	d.metrics.sendFailed()
	d.logger.Error("outbound send failed, transition abandoned",
		"chat_id", chatID,
		"node", nodeID,
		"err", err,
	)
}
