package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/kompisbot/kompis/pkg/domain"
)

// exitKeyword is the reserved free-text shortcut for the exit option.
const exitKeyword = "exit"

// LinkDef is one URL button in a declarative definition record.
type LinkDef struct {
	Content string `mapstructure:"content" yaml:"content"`
	URL     string `mapstructure:"url" yaml:"url"`
}

// OptionEntryDef is one transition button: its label plus the node the
// button's action value points at.
type OptionEntryDef struct {
	Content    string `mapstructure:"content" yaml:"content"`
	NextNodeID string `mapstructure:"next_node_id" yaml:"next_node_id"`
}

// OptionDef is the declarative record for an option node.
type OptionDef struct {
	Content     string             `mapstructure:"content" yaml:"content"`
	Links       [][]LinkDef        `mapstructure:"links" yaml:"links"`
	Options     [][]OptionEntryDef `mapstructure:"options" yaml:"options"`
	ExitNodeID  string             `mapstructure:"exit_node_id" yaml:"exit_node_id"`
	ExitContent string             `mapstructure:"exit_node_content" yaml:"exit_node_content"`
}

// OptionNode is a data-driven branching node. Its whole behavior lives in the
// definition record: the content template, link rows, option rows and the
// optional exit shortcut. The branching convention is that a button's action
// value *is* the target node ID, so clicked buttons and typed labels
// normalize to the same thing.
type OptionNode struct {
	baseNode
	content     string
	links       [][]LinkDef
	options     [][]OptionEntryDef
	exitNodeID  string
	exitContent string

	// actions maps lower-cased labels (and the exit keyword) to target IDs.
	// labels is the reverse map used by LockedRender.
	actions map[string]string
	labels  map[string]string
	targets map[string]struct{}
}

// NewOptionNode constructs an option node from its definition record.
// Construction fails on a missing content template or an incomplete option
// entry; cross-references are only checked by the offline consistency check.
func NewOptionNode(id string, def OptionDef) (*OptionNode, error) {
	if def.Content == "" {
		return nil, fmt.Errorf("option node %q: content is required", id)
	}

	n := &OptionNode{
		baseNode:    baseNode{id: id},
		content:     def.Content,
		links:       def.Links,
		options:     def.Options,
		exitNodeID:  def.ExitNodeID,
		exitContent: def.ExitContent,
		actions:     make(map[string]string),
		labels:      make(map[string]string),
		targets:     make(map[string]struct{}),
	}

	for _, row := range def.Links {
		for _, link := range row {
			if link.Content == "" || link.URL == "" {
				return nil, fmt.Errorf("option node %q: link entries need content and url", id)
			}
		}
	}

	for _, row := range def.Options {
		for _, opt := range row {
			if opt.Content == "" || opt.NextNodeID == "" {
				return nil, fmt.Errorf("option node %q: option entries need content and next_node_id", id)
			}
			label := strings.ToLower(opt.Content)
			if label == exitKeyword {
				return nil, fmt.Errorf("option node %q: label %q is reserved for the exit shortcut", id, exitKeyword)
			}
			n.actions[label] = opt.NextNodeID
			n.labels[opt.NextNodeID] = opt.Content
			n.targets[opt.NextNodeID] = struct{}{}
		}
	}

	if def.ExitNodeID != "" {
		if def.ExitContent == "" {
			return nil, fmt.Errorf("option node %q: exit_node_content is required with exit_node_id", id)
		}
		n.actions[exitKeyword] = def.ExitNodeID
		n.targets[def.ExitNodeID] = struct{}{}
	}

	return n, nil
}

// Render substitutes session parameters into the content template and lays
// out link rows above option rows. An empty grid still carries one explicit
// empty row.
func (n *OptionNode) Render(session *domain.Session, msg domain.Message, prefix string) *domain.Payload {
	p := domain.NewPayload(msg.ChatID, prefix+applySessionParams(n.content, session))

	var rows [][]domain.Button
	for _, linkRow := range n.links {
		row := make([]domain.Button, 0, len(linkRow))
		for _, link := range linkRow {
			// Link labels and URLs go through the same substitution as
			// the content, so stashed lookup results can surface here.
			row = append(row, domain.Button{
				Label: applySessionParams(link.Content, session),
				URL:   applySessionParams(link.URL, session),
			})
		}
		rows = append(rows, row)
	}
	for _, optRow := range n.options {
		row := make([]domain.Button, 0, len(optRow))
		for _, opt := range optRow {
			row = append(row, domain.Button{Label: opt.Content, Action: opt.NextNodeID})
		}
		rows = append(rows, row)
	}
	if n.exitNodeID != "" {
		rows = append(rows, []domain.Button{{Label: n.exitContent, Action: n.exitNodeID}})
	}

	if len(rows) > 0 {
		p.Keyboard = rows
	}
	return p
}

// LockedRender echoes the prior content without buttons, appending the chosen
// answer unless the exit shortcut was taken.
func (n *OptionNode) LockedRender(session *domain.Session, action string) *domain.Payload {
	text := session.Text
	if action != n.exitNodeID {
		if label, ok := n.labels[action]; ok {
			text = fmt.Sprintf("%s\n\nYour answer: %s", text, label)
		}
	}
	p := domain.NewPayload(session.ChatID, text)
	p.MessageID = session.MessageID
	return p
}

// Normalize resolves a typed label (case-insensitive) to its target node ID.
// Unknown text passes through; button presses already carry the target ID, so
// both input styles converge on the same token.
func (n *OptionNode) Normalize(raw string) string {
	if target, ok := n.actions[strings.ToLower(raw)]; ok {
		return target
	}
	return raw
}

// IsExpected accepts exactly the known target node IDs. A node without
// options rejects everything.
func (n *OptionNode) IsExpected(action string) bool {
	_, ok := n.targets[action]
	return ok
}

// ComputeNext is the identity: the normalized action is the next node ID by
// construction.
func (n *OptionNode) ComputeNext(_ context.Context, _ *domain.Session, _ domain.Message, action string) (string, error) {
	return action, nil
}

// References lists every target node ID in the option table.
func (n *OptionNode) References() []string {
	refs := make([]string, 0, len(n.targets))
	for target := range n.targets {
		refs = append(refs, target)
	}
	return refs
}
