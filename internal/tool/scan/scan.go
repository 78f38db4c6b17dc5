// Package scan finds readme files below a work folder and keeps the list of
// known readme files on disk.
package scan

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Cyclone1070/bioview/internal/config"
	"github.com/Cyclone1070/bioview/internal/tool/service/git"
)

// fileSystem defines the minimal filesystem operations needed for scanning.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ListDir(path string) ([]os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// ignoreService decides which paths below the root are skipped.
type ignoreService interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}

// Result is the outcome of one scan.
type Result struct {
	Root     string
	Files    []string
	Err      error
	Duration time.Duration
}

// Scanner walks a directory tree collecting files whose name matches the
// configured pattern, compared case-insensitively.
type Scanner struct {
	fs      fileSystem
	pattern string
	logger  *slog.Logger
}

// NewScanner creates a Scanner for files.scan_pattern.
func NewScanner(fs fileSystem, cfg *config.Config, logger *slog.Logger) *Scanner {
	return &Scanner{
		fs:      fs,
		pattern: strings.ToLower(cfg.Files.ScanPattern),
		logger:  logger,
	}
}

// Matches reports whether a base name matches the scan pattern.
func (s *Scanner) Matches(name string) bool {
	ok, err := filepath.Match(s.pattern, strings.ToLower(name))
	return err == nil && ok
}

// Scan returns the sorted absolute paths of all matching files below root.
// Paths excluded by the root's ignore files, .git directories and symlink
// loops are skipped. Sub-directories that cannot be listed are logged and
// skipped; only a failure on root itself is an error.
func (s *Scanner) Scan(ctx context.Context, root string) ([]string, error) {
	if root == "" {
		return nil, ErrRootRequired
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &StatError{Path: root, Cause: err}
	}

	info, err := s.fs.Stat(abs)
	if err != nil {
		return nil, &StatError{Path: abs, Cause: err}
	}
	if !info.IsDir() {
		return nil, &NotDirectoryError{Path: abs}
	}

	var ignore ignoreService
	ignore, err = git.NewService(abs, s.fs)
	if err != nil {
		s.logger.Warn("ignore files unreadable, scanning everything", "root", abs, "error", err)
		ignore = &git.NoOpService{}
	}

	w := &walker{scanner: s, root: abs, ignore: ignore, visited: make(map[string]bool)}
	if err := w.walk(ctx, abs, true); err != nil {
		return nil, err
	}

	sort.Strings(w.files)
	s.logger.Debug("scan finished", "root", abs, "files", len(w.files))
	return w.files, nil
}

type walker struct {
	scanner *Scanner
	root    string
	ignore  ignoreService
	visited map[string]bool
	files   []string
}

func (w *walker) walk(ctx context.Context, dir string, isRoot bool) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Detect symlink loops using canonical path
	canonical, err := filepath.EvalSymlinks(dir)
	if err != nil {
		canonical = dir
	}
	if w.visited[canonical] {
		return nil
	}
	w.visited[canonical] = true

	entries, err := w.scanner.fs.ListDir(dir)
	if err != nil {
		if isRoot {
			return &ListError{Path: dir, Cause: err}
		}
		w.scanner.logger.Warn("skipping unreadable directory", "path", dir, "error", err)
		return nil
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()

		if entry.Mode()&os.ModeSymlink != 0 {
			target, err := w.scanner.fs.Stat(path)
			if err != nil {
				continue // dangling link
			}
			isDir = target.IsDir()
		}

		if isDir && entry.Name() == ".git" {
			continue
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		if w.ignore.ShouldIgnore(rel, isDir) {
			continue
		}

		if isDir {
			if err := w.walk(ctx, path, false); err != nil {
				return err
			}
			continue
		}
		if w.scanner.Matches(entry.Name()) {
			w.files = append(w.files, path)
		}
	}
	return nil
}
