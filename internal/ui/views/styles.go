package views

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("39")
	ColorMuted   = lipgloss.Color("241")
	ColorError   = lipgloss.Color("196")
	ColorOK      = lipgloss.Color("42")
	ColorWarn    = lipgloss.Color("214")
)

var (
	PaneStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorMuted)
	FocusedPaneStyle = PaneStyle.BorderForeground(ColorPrimary)
	PopupStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorPrimary).Padding(1, 2)

	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	MutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	ModifiedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorWarn)

	StatusDefaultStyle = lipgloss.NewStyle().Padding(0, 1)
	StatusBusyStyle    = StatusDefaultStyle.Foreground(ColorPrimary)
	StatusDoneStyle    = StatusDefaultStyle.Foreground(ColorOK)
	StatusErrorStyle   = StatusDefaultStyle.Foreground(ColorError)
)
