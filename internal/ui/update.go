package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Cyclone1070/bioview/internal/app"
	"github.com/Cyclone1070/bioview/internal/config"
	"github.com/Cyclone1070/bioview/internal/tool/file"
	"github.com/Cyclone1070/bioview/internal/tool/readme"
	"github.com/Cyclone1070/bioview/internal/ui/models"
	"github.com/Cyclone1070/bioview/internal/ui/services"
	"github.com/Cyclone1070/bioview/internal/ui/views"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Rows taken by the status bar and pane borders.
const chromeHeight = 3

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	// Dependencies
	ctx        context.Context
	dispatcher Dispatcher
	renderer   services.MarkdownRenderer
	listWidth  int
}

// newBubbleTeaModel creates a new Bubble Tea model
func newBubbleTeaModel(
	ctx context.Context,
	dispatcher Dispatcher,
	cfg *config.Config,
	workFolder string,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
) BubbleTeaModel {
	l := list.New(nil, list.NewDefaultDelegate(), cfg.UI.ListWidth, 20)
	l.Title = "Readme files"
	l.SetShowHelp(false)

	ed := textarea.New()
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.MaxWidth = 0

	ti := textinput.New()

	return BubbleTeaModel{
		state: models.State{
			List:           l,
			Viewer:         viewport.New(80, 20),
			Editor:         ed,
			Input:          ti,
			Spinner:        spinnerFactory(),
			WorkFolder:     workFolder,
			RenderMarkdown: cfg.UI.RenderMarkdown,
			StatusPhase:    models.PhaseReady,
		},
		ctx:        ctx,
		dispatcher: dispatcher,
		renderer:   renderer,
		listWidth:  cfg.UI.ListWidth,
	}
}

// Init loads the readme list and starts listening for events.
func (m BubbleTeaModel) Init() tea.Cmd {
	return tea.Batch(
		m.state.Spinner.Tick,
		loadList(m.ctx, m.dispatcher),
		listenForEvents(m.dispatcher.Events()),
	)
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state, m.listWidth)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case listLoadedMsg:
		if msg.err != nil {
			m.setStatus(models.PhaseError, msg.err.Error())
			return m, nil
		}
		cmd := m.setFiles(msg.files)
		if len(msg.files) == 0 && m.state.WorkFolder != "" && !m.state.Scanning {
			scan := m.rescan()
			return m, tea.Batch(cmd, scan)
		}
		return m, cmd

	case fileLoadedMsg:
		return m.handleFileLoaded(msg)

	case fileSavedMsg:
		if msg.err != nil {
			m.setStatus(models.PhaseError, msg.err.Error())
			return m, nil
		}
		m.state.File.Text = msg.text
		m.state.Modified = m.state.Editor.Value() != msg.text
		status := "Saved " + filepath.Base(msg.res.Path)
		if msg.res.Rotated {
			status += " (previous version backed up)"
		}
		m.setStatus(models.PhaseDone, status)
		m.refreshViewer()
		return m, nil

	case fileCreatedMsg:
		return m.handleFileCreated(msg)

	case scanStartedMsg:
		if msg.err != nil {
			m.state.Scanning = false
			m.setStatus(models.PhaseError, msg.err.Error())
			return m, nil
		}
		m.state.WorkFolder = msg.res.Root
		return m, nil

	case searchDoneMsg:
		if msg.err != nil {
			m.setStatus(models.PhaseError, msg.err.Error())
			return m, nil
		}
		paths := make([]string, len(msg.res.Matches))
		for i, match := range msg.res.Matches {
			paths[i] = match.Path
		}
		m.state.SearchTerms = msg.terms
		status := fmt.Sprintf("%d matching files", len(paths))
		if n := len(msg.res.Skipped); n > 0 {
			status += fmt.Sprintf(", %d unreadable", n)
		}
		m.setStatus(models.PhaseDone, status)
		return m, m.setFiles(paths)

	case modifiedMsg:
		if msg.err != nil {
			m.setStatus(models.PhaseError, msg.err.Error())
			return m, nil
		}
		if msg.modified {
			m.state.Pending = &models.Confirm{Kind: models.ConfirmDiscard, Prompt: "Discard unsaved changes?"}
			return m, nil
		}
		m.leaveEditor()
		return m, nil

	case eventMsg:
		return m.handleEvent(app.Event(msg))

	case eventsClosedMsg:
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Confirmation prompts take every key
	if m.state.Pending != nil {
		return m.handleConfirmKey(msg)
	}

	switch m.state.Mode {
	case models.ModeEdit:
		return m.handleEditKey(msg)
	case models.ModeCreate:
		return m.handleCreateKey(msg)
	case models.ModeSearch:
		return m.handleSearchKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m BubbleTeaModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The list's own filter prompt owns the keyboard while open
	if m.state.List.FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "enter", "e":
		if m.state.File == nil || m.state.File.Failed {
			if path := m.selectedPath(); path != "" {
				cmd := m.open(path)
				return m, cmd
			}
			return m, nil
		}
		m.state.Mode = models.ModeEdit
		m.state.Editor.SetValue(m.state.File.Text)
		m.state.Modified = false
		return m, m.state.Editor.Focus()

	case "n":
		m.state.Mode = models.ModeCreate
		m.state.CreateStep = models.StepDir
		m.state.PolicyIndex = 0
		m.state.Input.Placeholder = "folder for the new readme"
		m.state.Input.SetValue(m.defaultCreateDir())
		m.state.Input.CursorEnd()
		return m, m.state.Input.Focus()

	case "r":
		cmd := m.rescan()
		return m, cmd

	case "s":
		m.state.Mode = models.ModeSearch
		m.state.Input.Placeholder = "words to search for"
		m.state.Input.SetValue("")
		return m, m.state.Input.Focus()

	case "m":
		m.state.RenderMarkdown = !m.state.RenderMarkdown
		m.refreshViewer()
		return m, nil

	case "esc":
		if len(m.state.SearchTerms) > 0 {
			m.state.SearchTerms = nil
			return m, loadList(m.ctx, m.dispatcher)
		}
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.state.Viewer, cmd = m.state.Viewer.Update(msg)
		return m, cmd
	}

	return m.updateList(msg)
}

// updateList forwards msg to the list and opens the newly selected file
// when the selection moved.
func (m BubbleTeaModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.selectedPath()
	var cmd tea.Cmd
	m.state.List, cmd = m.state.List.Update(msg)
	if after := m.selectedPath(); after != "" && after != before {
		load := m.open(after)
		return m, tea.Batch(cmd, load)
	}
	return m, cmd
}

func (m BubbleTeaModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.setStatus(models.PhaseBusy, "Saving "+filepath.Base(m.state.File.Path))
		return m, saveFile(m.ctx, m.dispatcher, m.state.File.Path, m.state.Editor.Value())
	case "esc":
		return m, checkModified(m.ctx, m.dispatcher, m.state.File.Path, m.state.Editor.Value())
	}

	var cmd tea.Cmd
	m.state.Editor, cmd = m.state.Editor.Update(msg)
	m.state.Modified = m.state.Editor.Value() != m.state.File.Text
	return m, cmd
}

func (m BubbleTeaModel) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.state.Mode = models.ModeBrowse
		m.state.Input.Blur()
		return m, nil
	}

	if m.state.CreateStep == models.StepDir {
		if msg.String() == "enter" {
			dir := strings.TrimSpace(m.state.Input.Value())
			if dir == "" {
				return m, nil
			}
			m.state.CreateDir = dir
			m.state.CreateStep = models.StepPolicy
			m.state.Input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.state.Input, cmd = m.state.Input.Update(msg)
		return m, cmd
	}

	policies := readme.Policies()
	switch key := msg.String(); key {
	case "up", "k":
		if m.state.PolicyIndex > 0 {
			m.state.PolicyIndex--
		}
	case "down", "j":
		if m.state.PolicyIndex < len(policies)-1 {
			m.state.PolicyIndex++
		}
	case "enter":
		return m.create(policies[m.state.PolicyIndex], false)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(policies) {
			m.state.PolicyIndex = n - 1
			return m.create(policies[n-1], false)
		}
	}
	return m, nil
}

func (m BubbleTeaModel) create(p readme.Policy, overwrite bool) (tea.Model, tea.Cmd) {
	m.state.Mode = models.ModeBrowse
	m.setStatus(models.PhaseBusy, "Creating readme in "+m.state.CreateDir)
	return m, createFile(m.ctx, m.dispatcher, m.state.CreateDir, p.String(), overwrite)
}

func (m BubbleTeaModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state.Mode = models.ModeBrowse
		m.state.Input.Blur()
		return m, nil
	case "enter":
		terms := strings.Fields(m.state.Input.Value())
		m.state.Mode = models.ModeBrowse
		m.state.Input.Blur()
		if len(terms) == 0 {
			return m, nil
		}
		m.setStatus(models.PhaseBusy, "Searching")
		return m, search(m.ctx, m.dispatcher, terms)
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

func (m BubbleTeaModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.state.Pending
	switch msg.String() {
	case "y", "Y":
		m.state.Pending = nil
		switch pending.Kind {
		case models.ConfirmOverwrite:
			m.state.CreateDir = pending.Dir
			return m.create(pending.Policy, true)
		case models.ConfirmDiscard:
			m.leaveEditor()
		}
	case "n", "N", "esc":
		m.state.Pending = nil
	}
	return m, nil
}

func (m BubbleTeaModel) handleFileLoaded(msg fileLoadedMsg) (tea.Model, tea.Cmd) {
	// A slower load of an earlier selection must not replace the current one
	if m.state.Requested != "" && msg.path != m.state.Requested {
		return m, nil
	}
	if msg.err != nil {
		// Keep the file selected but show why it cannot be displayed
		m.state.File = &models.OpenFile{Path: msg.path, Failed: true}
		m.state.Viewer.SetContent(file.Placeholder(msg.err))
		m.state.Viewer.GotoTop()
		m.setStatus(models.PhaseError, msg.err.Error())
		return m, nil
	}

	m.state.File = &models.OpenFile{
		Path:     msg.res.Path,
		Text:     msg.res.Text,
		Encoding: msg.res.DecodedWith,
		Fallback: msg.res.Fallback,
	}
	m.state.Modified = false
	m.refreshViewer()
	m.state.Viewer.GotoTop()
	if msg.res.Fallback {
		m.setStatus(models.PhaseDone, fmt.Sprintf("Decoded with fallback %s", msg.res.DecodedWith))
	}
	return m, nil
}

func (m BubbleTeaModel) handleFileCreated(msg fileCreatedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, readme.ErrFileExists) {
		m.state.Pending = &models.Confirm{
			Kind:   models.ConfirmOverwrite,
			Prompt: "A readme already exists in " + msg.dir + ". Overwrite it?",
			Dir:    msg.dir,
			Policy: readme.Policies()[m.state.PolicyIndex],
		}
		m.setStatus(models.PhaseReady, "")
		return m, nil
	}
	if msg.err != nil {
		m.setStatus(models.PhaseError, msg.err.Error())
		return m, nil
	}

	m.setStatus(models.PhaseDone, "Created "+msg.res.Path)
	load := m.open(msg.res.Path)
	return m, load
}

func (m BubbleTeaModel) handleEvent(ev app.Event) (tea.Model, tea.Cmd) {
	next := listenForEvents(m.dispatcher.Events())

	switch ev.Kind {
	case app.EventScanDone:
		m.state.Scanning = false
		if ev.Err != nil {
			m.setStatus(models.PhaseError, ev.Err.Error())
			return m, next
		}
		m.state.WorkFolder = ev.Path
		m.state.SearchTerms = nil
		m.setStatus(models.PhaseDone, fmt.Sprintf("Found %d readme files", len(ev.Files)))
		return m, tea.Batch(next, m.setFiles(ev.Files))

	case app.EventFileCreated:
		if len(m.state.SearchTerms) == 0 {
			return m, tea.Batch(next, loadList(m.ctx, m.dispatcher))
		}
	}
	return m, next
}

func (m *BubbleTeaModel) rescan() tea.Cmd {
	if m.state.Scanning {
		return nil
	}
	if m.state.WorkFolder == "" {
		m.setStatus(models.PhaseError, "No work folder set; run bioview scan <folder> first")
		return nil
	}
	m.state.Scanning = true
	m.setStatus(models.PhaseBusy, "Scanning "+m.state.WorkFolder)
	return tea.Batch(m.state.Spinner.Tick, startScan(m.ctx, m.dispatcher, m.state.WorkFolder))
}

// open starts loading path and remembers it as the file the viewer wants.
func (m *BubbleTeaModel) open(path string) tea.Cmd {
	m.state.Requested = path
	return loadFile(m.ctx, m.dispatcher, path)
}

func (m *BubbleTeaModel) leaveEditor() {
	m.state.Mode = models.ModeBrowse
	m.state.Modified = false
	m.state.Editor.Blur()
	m.refreshViewer()
}

func (m *BubbleTeaModel) setFiles(paths []string) tea.Cmd {
	return m.state.List.SetItems(models.Items(paths, m.listWidth-4))
}

func (m *BubbleTeaModel) setStatus(phase, message string) {
	m.state.StatusPhase = phase
	m.state.StatusMessage = message
}

func (m BubbleTeaModel) selectedPath() string {
	item, ok := m.state.List.SelectedItem().(models.ReadmeItem)
	if !ok {
		return ""
	}
	return item.Path
}

func (m BubbleTeaModel) defaultCreateDir() string {
	if m.state.File != nil {
		return filepath.Dir(m.state.File.Path)
	}
	if path := m.selectedPath(); path != "" {
		return filepath.Dir(path)
	}
	return m.state.WorkFolder
}

// refreshViewer re-renders the open file into the viewport.
func (m *BubbleTeaModel) refreshViewer() {
	if m.state.File == nil {
		return
	}
	text := m.state.File.Text
	if m.state.Mode == models.ModeEdit {
		text = m.state.Editor.Value()
	}
	m.state.Viewer.SetContent(services.RenderText(text, m.state.Viewer.Width, m.state.RenderMarkdown, m.renderer))
}

func (m *BubbleTeaModel) resize(width, height int) {
	m.state.Width = width
	m.state.Height = height

	paneHeight := max(height-chromeHeight-2, 1)
	rightWidth := max(width-m.listWidth-6, 10)

	m.state.List.SetSize(m.listWidth, paneHeight)
	// Two header rows above the viewer and editor
	m.state.Viewer.Width = rightWidth
	m.state.Viewer.Height = max(paneHeight-2, 1)
	m.state.Editor.SetWidth(rightWidth)
	m.state.Editor.SetHeight(max(paneHeight-2, 1))
	m.refreshViewer()
}
