package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/kompisbot/kompis/pkg/domain"
)

// NewRenderer returns a function that renders bot payloads for the
// terminal using glamour. The message text is treated as markdown and
// the keyboard is flattened into a bullet list of choices.
func NewRenderer() func(*domain.Payload) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	return func(payload *domain.Payload) (string, error) {
		var b strings.Builder
		b.WriteString(payload.Text)
		b.WriteString("\n")
		for _, row := range payload.Keyboard {
			for _, button := range row {
				if button.URL != "" {
					fmt.Fprintf(&b, "\n- [%s](%s)", button.Label, button.URL)
				} else {
					fmt.Fprintf(&b, "\n- **%s**", button.Label)
				}
			}
		}
		return r.Render(b.String())
	}
}
