package readme

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Cyclone1070/bioview/internal/config"
	"github.com/Cyclone1070/bioview/internal/tool/helper/content"
)

//go:embed templates/readme_template.txt
var defaultTemplate string

// DefaultTemplate returns the built-in template document.
func DefaultTemplate() string {
	return defaultTemplate
}

// textLoader defines the text loading needed to read templates.
type textLoader interface {
	LoadText(path string) (string, error)
}

// TemplateSource reads the active template from the template directory.
type TemplateSource struct {
	loader textLoader
	dir    string
	name   string
}

// NewTemplateSource creates a source for template name inside dir.
func NewTemplateSource(loader textLoader, dir, name string) *TemplateSource {
	return &TemplateSource{loader: loader, dir: dir, name: name}
}

// Path returns the location of the template file.
func (s *TemplateSource) Path() string {
	return filepath.Join(s.dir, s.name)
}

// Lines reads the template. When the default template has not been
// installed in the template directory the built-in copy is used.
func (s *TemplateSource) Lines() ([]string, error) {
	text, err := s.loader.LoadText(s.Path())
	if err != nil {
		if s.name == config.DefaultTemplateName && errors.Is(err, os.ErrNotExist) {
			return content.SplitLinesKeepEnds(defaultTemplate), nil
		}
		return nil, &TemplateError{Name: s.name, Cause: err}
	}
	return content.SplitLinesKeepEnds(text), nil
}

// Func adapts the source to a TemplateFunc.
func (s *TemplateSource) Func() TemplateFunc {
	return s.Lines
}

// AvailableTemplates lists the .txt files in dir. The default template name
// is always included because a built-in copy exists.
func AvailableTemplates(fs dirLister, dir string) ([]string, error) {
	names := []string{config.DefaultTemplateName}

	infos, err := fs.ListDir(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	for _, info := range infos {
		if info.IsDir() || !strings.EqualFold(filepath.Ext(info.Name()), ".txt") {
			continue
		}
		if info.Name() != config.DefaultTemplateName {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names[1:])
	return names, nil
}
