// Package models holds the state rendered by the views.
package models

import (
	"github.com/Cyclone1070/bioview/internal/tool/readme"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeEdit
	ModeCreate
	ModeSearch
)

// CreateStep is the stage of the create popup.
type CreateStep int

const (
	StepDir CreateStep = iota
	StepPolicy
)

// ConfirmKind says what a yes answer does.
type ConfirmKind int

const (
	ConfirmOverwrite ConfirmKind = iota
	ConfirmDiscard
)

// Confirm is a pending yes/no question.
type Confirm struct {
	Kind   ConfirmKind
	Prompt string
	// Dir and Policy repeat the create request for ConfirmOverwrite.
	Dir    string
	Policy readme.Policy
}

// Status phases.
const (
	PhaseReady = "ready"
	PhaseBusy  = "busy"
	PhaseDone  = "done"
	PhaseError = "error"
)

// OpenFile is the readme shown in the viewer.
type OpenFile struct {
	Path     string
	Text     string
	Encoding string
	Fallback bool
	// Failed is set when the file could not be loaded; it cannot be edited.
	Failed   bool
}

// State is everything the views need.
type State struct {
	Mode   Mode
	Width  int
	Height int

	List    list.Model
	Viewer  viewport.Model
	Editor  textarea.Model
	Input   textinput.Model
	Spinner spinner.Model

	File      *OpenFile
	Modified  bool
	// Requested is the path of the most recent load; older results are dropped
	Requested string

	CreateStep  CreateStep
	PolicyIndex int
	CreateDir   string

	Pending *Confirm

	Scanning       bool
	WorkFolder     string
	SearchTerms    []string
	RenderMarkdown bool

	StatusPhase   string
	StatusMessage string
}
