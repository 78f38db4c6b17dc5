// Package services holds rendering helpers used by the views.
package services

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for a terminal of the given width.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders markdown with glamour.
type GlamourRenderer struct {
	style string
}

// NewGlamourRenderer creates a renderer using glamour's dark style.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{style: "dark"}
}

// Render implements MarkdownRenderer
func (g *GlamourRenderer) Render(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(g.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

// RenderText returns content rendered as markdown when enabled, or as is.
// Rendering errors fall back to the plain text.
func RenderText(content string, width int, markdown bool, renderer MarkdownRenderer) string {
	if !markdown || renderer == nil || width <= 0 {
		return content
	}
	out, err := renderer.Render(content, width)
	if err != nil {
		return content
	}
	return out
}
