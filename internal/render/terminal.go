package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultStyle is the glamour style used for terminal output.
const DefaultStyle = "dracula"

// Terminal renders Markdown for display in a terminal using glamour.
func Terminal(markdown, style string, width int) (string, error) {
	if style == "" {
		style = DefaultStyle
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
