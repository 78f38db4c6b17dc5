package views

import (
	"fmt"

	"github.com/Cyclone1070/bioview/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderStatus renders the status bar: the phase and message on the left,
// the work folder and key help on the right.
func RenderStatus(s models.State) string {
	var icon string
	var style lipgloss.Style

	switch s.StatusPhase {
	case models.PhaseBusy:
		icon = s.Spinner.View()
		style = StatusBusyStyle
	case models.PhaseDone:
		icon = "✔"
		style = StatusDoneStyle
	case models.PhaseError:
		icon = "✘"
		style = StatusErrorStyle
	default:
		style = StatusDefaultStyle
	}

	status := "Ready"
	if s.StatusMessage != "" {
		status = s.StatusMessage
		if icon != "" {
			status = fmt.Sprintf("%s %s", icon, s.StatusMessage)
		}
	}
	if s.Scanning && s.StatusPhase != models.PhaseBusy {
		status = fmt.Sprintf("%s %s", s.Spinner.View(), status)
	}
	leftSide := style.Render(status)

	rightSide := MutedStyle.Render(keyHelp(s.Mode))
	if s.WorkFolder != "" {
		rightSide = MutedStyle.Render(s.WorkFolder) + "  " + rightSide
	}

	gap := s.Width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 2 {
		return leftSide + "  " + rightSide
	}
	return leftSide + lipgloss.NewStyle().Width(gap).Render("") + rightSide
}

func keyHelp(mode models.Mode) string {
	switch mode {
	case models.ModeEdit:
		return "ctrl+s save  esc back"
	case models.ModeSearch:
		return "enter search  esc cancel"
	case models.ModeCreate:
		return "esc cancel"
	}
	return "enter open  e edit  n new  r rescan  s search  m markdown  q quit"
}
