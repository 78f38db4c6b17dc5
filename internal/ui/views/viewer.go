package views

import (
	"fmt"

	"github.com/Cyclone1070/bioview/internal/ui/models"
)

// RenderViewer renders the right pane: the open file in the viewport, or the
// editor while editing.
func RenderViewer(s models.State) string {
	if s.File == nil {
		return MutedStyle.Render("Select a readme file and press enter.")
	}

	title := s.File.Path
	if s.Modified {
		title += ModifiedStyle.Render(" [modified]")
	}
	header := HeaderStyle.Render(title)

	info := s.File.Encoding
	if s.File.Fallback {
		info = fmt.Sprintf("%s (fallback)", info)
	}

	body := s.Viewer.View()
	if s.Mode == models.ModeEdit {
		body = s.Editor.View()
	}
	return header + "\n" + MutedStyle.Render(info) + "\n" + body
}
