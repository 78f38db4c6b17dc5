package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/bioview/internal/tool/helper/content"
)

// listWriter defines the filesystem operations needed to store the readme list.
type listWriter interface {
	EnsureDirs(path string) error
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
}

// listReader defines the filesystem operations needed to read the readme list.
type listReader interface {
	ReadFile(path string) ([]byte, error)
}

// WriteList stores files in the list file at path, one path per line.
func WriteList(fs listWriter, path string, files []string) error {
	if err := fs.EnsureDirs(filepath.Dir(path)); err != nil {
		return &ListFileError{Path: path, Cause: err}
	}

	var b strings.Builder
	for _, f := range files {
		b.WriteString(f)
		b.WriteByte('\n')
	}
	if err := fs.WriteFileAtomic(path, []byte(b.String()), 0o644); err != nil {
		return &ListFileError{Path: path, Cause: err}
	}
	return nil
}

// LoadList reads the list file at path. Blank lines are dropped; CRLF files
// written on Windows are accepted.
func LoadList(fs listReader, path string) ([]string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, &ListFileError{Path: path, Cause: err}
	}

	var files []string
	for _, line := range content.SplitLines(string(data)) {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}
