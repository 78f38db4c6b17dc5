package views

import (
	"github.com/Cyclone1070/bioview/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State, listWidth int) string {
	if popup := overlay(s); popup != "" {
		return lipgloss.Place(
			s.Width,
			s.Height,
			lipgloss.Center,
			lipgloss.Center,
			popup,
			lipgloss.WithWhitespaceChars(""),
			lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
		)
	}

	left, right := PaneStyle, FocusedPaneStyle
	if s.Mode == models.ModeBrowse || s.Mode == models.ModeSearch {
		left, right = FocusedPaneStyle, PaneStyle
	}

	paneHeight := s.Height - 3
	if paneHeight < 1 {
		paneHeight = 1
	}
	rightWidth := s.Width - listWidth - 4
	if rightWidth < 1 {
		rightWidth = 1
	}

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		left.Width(listWidth).Height(paneHeight).Render(RenderBrowser(s)),
		right.Width(rightWidth).Height(paneHeight).Render(RenderViewer(s)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, panes, RenderStatus(s))
}

func overlay(s models.State) string {
	if s.Pending != nil {
		return RenderConfirm(s)
	}
	return RenderCreatePopup(s)
}
