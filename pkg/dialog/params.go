package dialog

import (
	"strings"

	"github.com/kompisbot/kompis/pkg/domain"
)

// applySessionParams substitutes every <attributeKey> token in the template
// with the session's attribute value. Tokens without a matching attribute are
// left untouched, so a missing value is visible in the rendered text instead
// of silently disappearing.
func applySessionParams(template string, session *domain.Session) string {
	if session == nil || len(session.Attributes) == 0 || !strings.Contains(template, "<") {
		return template
	}
	out := template
	for key, value := range session.Attributes {
		out = strings.ReplaceAll(out, "<"+key+">", value)
	}
	return out
}
