package ui

import (
	"context"

	"github.com/Cyclone1070/bioview/internal/app"
	tea "github.com/charmbracelet/bubbletea"
)

// Results of dispatched actions.
type listLoadedMsg struct {
	files []string
	err   error
}

type fileLoadedMsg struct {
	path string
	res  *app.LoadReadmeResponse
	err  error
}

type fileSavedMsg struct {
	text string
	res  *app.SaveReadmeResponse
	err  error
}

type fileCreatedMsg struct {
	dir string
	res *app.CreateReadmeResponse
	err error
}

type scanStartedMsg struct {
	res *app.ScanReadmesResponse
	err error
}

type searchDoneMsg struct {
	terms []string
	res   *app.SearchReadmesResponse
	err   error
}

type modifiedMsg struct {
	modified bool
	err      error
}

type eventMsg app.Event

type eventsClosedMsg struct{}

func loadList(ctx context.Context, d Dispatcher) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Call[*app.ListReadmesResponse](ctx, d, app.ActionListReadmes, nil)
		if err != nil {
			return listLoadedMsg{err: err}
		}
		return listLoadedMsg{files: res.Files}
	}
}

func loadFile(ctx context.Context, d Dispatcher, path string) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Call[*app.LoadReadmeResponse](ctx, d, app.ActionLoadReadme, map[string]any{"path": path})
		return fileLoadedMsg{path: path, res: res, err: err}
	}
}

func saveFile(ctx context.Context, d Dispatcher, path, text string) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Call[*app.SaveReadmeResponse](ctx, d, app.ActionSaveReadme, map[string]any{"path": path, "text": text})
		return fileSavedMsg{text: text, res: res, err: err}
	}
}

func createFile(ctx context.Context, d Dispatcher, dir, policy string, overwrite bool) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Call[*app.CreateReadmeResponse](ctx, d, app.ActionCreateReadme, map[string]any{
			"dir":       dir,
			"policy":    policy,
			"overwrite": overwrite,
		})
		return fileCreatedMsg{dir: dir, res: res, err: err}
	}
}

func startScan(ctx context.Context, d Dispatcher, root string) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Call[*app.ScanReadmesResponse](ctx, d, app.ActionScanReadmes, map[string]any{"root": root, "async": true})
		return scanStartedMsg{res: res, err: err}
	}
}

func search(ctx context.Context, d Dispatcher, terms []string) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Call[*app.SearchReadmesResponse](ctx, d, app.ActionSearchReadmes, map[string]any{"terms": terms})
		return searchDoneMsg{terms: terms, res: res, err: err}
	}
}

func checkModified(ctx context.Context, d Dispatcher, path, text string) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Call[*app.CheckModifiedResponse](ctx, d, app.ActionCheckModified, map[string]any{"path": path, "text": text})
		if err != nil {
			return modifiedMsg{err: err}
		}
		return modifiedMsg{modified: res.Modified}
	}
}

func listenForEvents(ch <-chan app.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(ev)
	}
}
