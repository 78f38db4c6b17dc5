// Package ui is the terminal readme browser and editor.
package ui

import (
	"context"

	"github.com/Cyclone1070/bioview/internal/config"
	"github.com/Cyclone1070/bioview/internal/ui/services"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// UI runs the Bubble Tea program.
type UI struct {
	program *tea.Program
}

// NewUI creates the UI. workFolder is shown in the status bar and scanned
// when no readme list exists yet.
func NewUI(
	ctx context.Context,
	dispatcher Dispatcher,
	cfg *config.Config,
	workFolder string,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
) *UI {
	model := newBubbleTeaModel(ctx, dispatcher, cfg, workFolder, renderer, spinnerFactory)
	return &UI{
		program: tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)),
	}
}

// Start runs the UI until the user quits.
func (u *UI) Start() error {
	_, err := u.program.Run()
	return err
}
