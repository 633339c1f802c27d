package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/abelbrown/headstart/internal/logging"
)

// Renderer renders markdown at a fixed width. The underlying glamour
// renderer is rebuilt when the width changes.
type Renderer struct {
	style string

	mu    sync.Mutex
	width int
	term  *glamour.TermRenderer
}

// NewRenderer returns a renderer using a glamour standard style such as
// "dark", "light" or "notty".
func NewRenderer(style string, width int) *Renderer {
	if style == "" {
		style = "dark"
	}
	r := &Renderer{style: style}
	r.SetWidth(width)
	return r
}

// SetWidth changes the wrap width.
func (r *Renderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.term != nil && width == r.width {
		return
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.Warn("Failed to build markdown renderer", "style", r.style, "error", err)
		term = nil
	}
	r.width = width
	r.term = term
}

// Render returns md styled for the terminal, or md itself if rendering fails.
func (r *Renderer) Render(md string) string {
	r.mu.Lock()
	term := r.term
	r.mu.Unlock()
	if term == nil {
		return md
	}
	out, err := term.Render(md)
	if err != nil {
		logging.Warn("Markdown render failed", "error", err)
		return md
	}
	return strings.TrimRight(out, "\n")
}
