package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/bioview/internal/tool/readme"
	"github.com/Cyclone1070/bioview/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderCreatePopup renders the create readme popup.
func RenderCreatePopup(s models.State) string {
	if s.Mode != models.ModeCreate {
		return ""
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Create README"))
	lines = append(lines, "")

	switch s.CreateStep {
	case models.StepDir:
		lines = append(lines, "Folder:")
		lines = append(lines, s.Input.View())
		lines = append(lines, "")
		lines = append(lines, MutedStyle.Render("Enter: Continue  Esc: Cancel"))
	case models.StepPolicy:
		lines = append(lines, MutedStyle.Render(s.CreateDir))
		lines = append(lines, "")
		for i, p := range readme.Policies() {
			label := fmt.Sprintf("%d. %s", i+1, p.Label())
			if i == s.PolicyIndex {
				lines = append(lines, lipgloss.NewStyle().
					Foreground(ColorPrimary).
					Bold(true).
					Render("▸ "+label))
			} else {
				lines = append(lines, "  "+label)
			}
		}
		lines = append(lines, "")
		lines = append(lines, MutedStyle.Render("1-4/Enter: Create  ↑/↓: Navigate  Esc: Cancel"))
	}

	return PopupStyle.Render(strings.Join(lines, "\n"))
}

// RenderConfirm renders a pending yes/no question.
func RenderConfirm(s models.State) string {
	if s.Pending == nil {
		return ""
	}
	content := s.Pending.Prompt + "\n\n" + MutedStyle.Render("y: Yes  n: No")
	return PopupStyle.Render(content)
}
