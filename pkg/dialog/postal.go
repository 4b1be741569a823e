package dialog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/kompisbot/kompis/pkg/domain"
	"github.com/kompisbot/kompis/pkg/ports"
)

var postalCodeRe = regexp.MustCompile(`^\d{5}$`)

// PostalDef is the declarative record for a postal lookup node.
type PostalDef struct {
	Content          string `mapstructure:"content" yaml:"content"`
	UnknownNodeID    string `mapstructure:"unknown_postal_node_id" yaml:"unknown_postal_node_id"`
	HasServiceNodeID string `mapstructure:"has_further_service_node_id" yaml:"has_further_service_node_id"`
	NoServiceNodeID  string `mapstructure:"no_further_service_node_id" yaml:"no_further_service_node_id"`
	ExitNodeID       string `mapstructure:"exit_node_id" yaml:"exit_node_id"`
	ExitContent      string `mapstructure:"exit_node_content" yaml:"exit_node_content"`
}

// PostalLookupNode asks for a five-digit postal code and branches on what the
// municipality index knows about it. The resolved municipality name and links
// are stashed into the session attribute bag for downstream templates.
type PostalLookupNode struct {
	baseNode
	content          string
	unknownNodeID    string
	hasServiceNodeID string
	noServiceNodeID  string
	exitNodeID       string
	exitContent      string
	index            ports.MunicipalityIndex
}

// NewPostalLookupNode constructs a postal lookup node from its definition
// record; the three downstream node IDs are mandatory.
func NewPostalLookupNode(id string, def PostalDef, index ports.MunicipalityIndex) (*PostalLookupNode, error) {
	if def.Content == "" {
		return nil, fmt.Errorf("postal node %q: content is required", id)
	}
	if def.UnknownNodeID == "" || def.HasServiceNodeID == "" || def.NoServiceNodeID == "" {
		return nil, fmt.Errorf("postal node %q: unknown_postal_node_id, has_further_service_node_id and no_further_service_node_id are required", id)
	}
	if def.ExitNodeID != "" && def.ExitContent == "" {
		return nil, fmt.Errorf("postal node %q: exit_node_content is required with exit_node_id", id)
	}
	if index == nil {
		return nil, fmt.Errorf("postal node %q: municipality index is required", id)
	}
	return &PostalLookupNode{
		baseNode:         baseNode{id: id},
		content:          def.Content,
		unknownNodeID:    def.UnknownNodeID,
		hasServiceNodeID: def.HasServiceNodeID,
		noServiceNodeID:  def.NoServiceNodeID,
		exitNodeID:       def.ExitNodeID,
		exitContent:      def.ExitContent,
		index:            index,
	}, nil
}

// Render shows the prompt, with the exit shortcut as the only button row.
func (n *PostalLookupNode) Render(session *domain.Session, msg domain.Message, prefix string) *domain.Payload {
	p := domain.NewPayload(msg.ChatID, prefix+applySessionParams(n.content, session))
	if n.exitNodeID != "" {
		p.Keyboard = [][]domain.Button{{{Label: n.exitContent, Action: n.exitNodeID}}}
	}
	return p
}

// LockedRender echoes the prompt with the entered code, unless exit was taken.
func (n *PostalLookupNode) LockedRender(session *domain.Session, action string) *domain.Payload {
	text := session.Text
	if action != n.exitNodeID {
		text = fmt.Sprintf("%s\n\nYour answer: %s", text, action)
	}
	p := domain.NewPayload(session.ChatID, text)
	p.MessageID = session.MessageID
	return p
}

// Normalize strips all whitespace from the typed code. The exit keyword (or
// the exit button's action value) maps to the exit node ID when configured.
func (n *PostalLookupNode) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if n.exitNodeID != "" && strings.EqualFold(trimmed, exitKeyword) {
		return n.exitNodeID
	}
	return strings.Join(strings.Fields(trimmed), "")
}

// IsExpected accepts the exit token or exactly five digits.
func (n *PostalLookupNode) IsExpected(action string) bool {
	if n.exitNodeID != "" && action == n.exitNodeID {
		return true
	}
	return postalCodeRe.MatchString(action)
}

// ComputeNext resolves the code against the municipality index, stashes what
// was found and branches to the matching downstream node.
func (n *PostalLookupNode) ComputeNext(_ context.Context, session *domain.Session, _ domain.Message, action string) (string, error) {
	if n.exitNodeID != "" && action == n.exitNodeID {
		return n.exitNodeID, nil
	}

	session.SetAttr(domain.AttrPostalCode, action)

	kommun, ok := n.index.Lookup(action)
	if !ok {
		return n.unknownNodeID, nil
	}

	session.SetAttr(domain.AttrKommunName, kommun.Name)
	session.SetAttr(domain.AttrKommunLink, kommun.Link)
	if kommun.KomvuxLink == "" {
		return n.noServiceNodeID, nil
	}
	session.SetAttr(domain.AttrKomvuxLink, kommun.KomvuxLink)
	return n.hasServiceNodeID, nil
}

// References lists the four downstream node IDs.
func (n *PostalLookupNode) References() []string {
	refs := []string{n.unknownNodeID, n.hasServiceNodeID, n.noServiceNodeID}
	if n.exitNodeID != "" {
		refs = append(refs, n.exitNodeID)
	}
	return refs
}
