package models

import (
	"path/filepath"

	"github.com/Cyclone1070/bioview/internal/tool/pathutil"
	"github.com/charmbracelet/bubbles/list"
)

// ReadmeItem is one readme file in the browser list.
type ReadmeItem struct {
	Path  string
	Width int
}

// Title implements list.DefaultItem
func (i ReadmeItem) Title() string {
	return pathutil.PrettyPrint(i.Path, i.Width)
}

// Description implements list.DefaultItem
func (i ReadmeItem) Description() string {
	return filepath.Base(filepath.Dir(i.Path))
}

// FilterValue implements list.Item
func (i ReadmeItem) FilterValue() string {
	return i.Path
}

// Items wraps paths for the list.
func Items(paths []string, width int) []list.Item {
	items := make([]list.Item, len(paths))
	for i, p := range paths {
		items[i] = ReadmeItem{Path: p, Width: width}
	}
	return items
}
