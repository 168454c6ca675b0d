package tui

import (
	"github.com/charmbracelet/glamour"
)

// Renderer turns a Markdown report into terminal output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a function that renders markdown using glamour.
// Width <= 0 keeps glamour's default word wrap.
func NewRenderer(width int) Renderer {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return Plain
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Plain returns the Markdown untouched, for pipes and files.
func Plain(markdown string) (string, error) {
	return markdown, nil
}
