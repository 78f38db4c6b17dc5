package views

import (
	"strings"

	"github.com/Cyclone1070/bioview/internal/ui/models"
)

// RenderBrowser renders the readme list, with the search prompt while
// searching and the active terms after a search.
func RenderBrowser(s models.State) string {
	var b strings.Builder
	if s.Mode == models.ModeSearch {
		b.WriteString(s.Input.View())
		b.WriteString("\n")
	} else if len(s.SearchTerms) > 0 {
		b.WriteString(MutedStyle.Render("search: " + strings.Join(s.SearchTerms, " ")))
		b.WriteString("\n")
	}
	b.WriteString(s.List.View())
	return b.String()
}
