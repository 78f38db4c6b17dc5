package views

import (
	"github.com/Cyclone1070/bioview/internal/ui/models"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

func createTestState(paths ...string) models.State {
	l := list.New(models.Items(paths, 30), list.NewDefaultDelegate(), 30, 20)
	l.SetShowHelp(false)
	return models.State{
		Width:   100,
		Height:  30,
		List:    l,
		Viewer:  viewport.New(60, 20),
		Editor:  textarea.New(),
		Input:   textinput.New(),
		Spinner: spinner.New(),
	}
}
