// Package git matches paths against the ignore files found at a scan root.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/bioview/internal/tool/helper/content"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// IgnoreFiles are read from the scan root, in order. Later files can
// re-include what earlier ones exclude.
var IgnoreFiles = []string{".gitignore", ".bioviewignore"}

// GitignoreReadError is returned when an ignore file exists but cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read ignore file at %s: %v", e.Path, e.Cause)
}
func (e *GitignoreReadError) Unwrap() error { return e.Cause }

// FileSystem defines the minimal filesystem interface needed for the ignore service.
type FileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// Service implements gitignore pattern matching using go-git's gitignore matcher.
type Service struct {
	matcher gitignore.Matcher
}

// NewService loads the ignore files from root. Missing files are fine; with
// none present the service never ignores anything.
func NewService(root string, fs FileSystem) (*Service, error) {
	var patterns []gitignore.Pattern

	for _, name := range IgnoreFiles {
		path := filepath.Join(root, name)
		if _, err := fs.Stat(path); err != nil {
			continue
		}

		data, err := fs.ReadFile(path)
		if err != nil {
			return nil, &GitignoreReadError{Path: path, Cause: err}
		}

		for _, line := range content.SplitLines(string(data)) {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			patterns = append(patterns, gitignore.ParsePattern(line, nil))
		}
	}

	if len(patterns) == 0 {
		return &Service{}, nil
	}
	return &Service{matcher: gitignore.NewMatcher(patterns)}, nil
}

// ShouldIgnore checks if a path relative to the root matches the ignore
// patterns. Directory-only patterns ("build/") need isDir.
func (g *Service) ShouldIgnore(relativePath string, isDir bool) bool {
	if g.matcher == nil {
		return false
	}
	segments := splitPath(relativePath)
	if len(segments) == 0 {
		return false
	}
	return g.matcher.Match(segments, isDir)
}

// splitPath splits a path into segments for gitignore matching.
// It normalizes path separators and filters out empty and "." segments.
func splitPath(path string) []string {
	normalized := filepath.ToSlash(path)

	var segments []string
	for _, part := range strings.Split(normalized, "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}

// NoOpService is an ignore service that never ignores any files.
// It is used when ignore handling is disabled or fails to initialize.
type NoOpService struct{}

// ShouldIgnore always returns false for NoOpService.
func (s *NoOpService) ShouldIgnore(relativePath string, isDir bool) bool {
	return false
}
