package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders an SOP or iteration log
// markdown document for the terminal using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	return func(markdown string) (string, error) {
		if err != nil {
			// Renderer construction failed (unusual terminal); fall back
			// to the raw markdown.
			return markdown, nil
		}
		return r.Render(markdown)
	}
}
