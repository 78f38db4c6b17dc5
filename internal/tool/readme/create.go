// Package readme creates new readme files from a header, an optional
// directory listing and an optional template document.
package readme

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"
)

const listMarker = "file list"

// fileWriter defines the minimal filesystem operations needed for creating readmes.
type fileWriter interface {
	Stat(path string) (os.FileInfo, error)
	EnsureDirs(path string) error
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
}

// ListingFunc returns the bare names of the entries of dir.
type ListingFunc func(dir string) ([]string, error)

// TemplateFunc returns the template document as lines that keep their "\n".
type TemplateFunc func() ([]string, error)

// CreateRequest describes a readme to create. Path has already been chosen by
// the caller; Overwrite must be set to replace an existing file.
type CreateRequest struct {
	Path      string
	Policy    Policy
	Overwrite bool
}

// Creator writes new readme files.
type Creator struct {
	fileOps   fileWriter
	now       func() time.Time
	user      func() string
	onCreated []func(path string)
	logger    *slog.Logger
}

// NewCreator creates a Creator stamping files with the current date and the
// login name of the current user.
func NewCreator(fileOps fileWriter, logger *slog.Logger) *Creator {
	return &Creator{
		fileOps: fileOps,
		now:     time.Now,
		user:    currentUser,
		logger:  logger,
	}
}

// OnCreated registers fn to be called with the path of every created file.
func (c *Creator) OnCreated(fn func(path string)) {
	c.onCreated = append(c.onCreated, fn)
}

// Create builds the readme described by req and writes it atomically. The
// listing and template are gathered before anything is written, so a failure
// leaves no file behind. list and tmpl may be nil when the policy does not
// need them.
func (c *Creator) Create(req CreateRequest, list ListingFunc, tmpl TemplateFunc) (string, error) {
	if req.Path == "" {
		return "", ErrPathRequired
	}
	if _, ok := policyNames[req.Policy]; !ok {
		return "", &UnknownPolicyError{Value: req.Policy.String()}
	}

	path := filepath.Clean(req.Path)
	info, err := c.fileOps.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return "", &IsDirectoryError{Path: path}
	case err == nil && !req.Overwrite:
		return "", fmt.Errorf("%w: %s", ErrFileExists, path)
	case err != nil && !os.IsNotExist(err):
		return "", &StatError{Path: path, Cause: err}
	}

	dir := filepath.Dir(path)
	var listing []string
	if req.Policy.IncludesListing() {
		if list == nil {
			return "", &ListingError{Dir: dir, Cause: ErrNoSource}
		}
		listing, err = list(dir)
		if err != nil {
			return "", &ListingError{Dir: dir, Cause: err}
		}
	}

	var lines []string
	if req.Policy.UsesTemplate() {
		if tmpl == nil {
			return "", &TemplateError{Cause: ErrNoSource}
		}
		lines, err = tmpl()
		if err != nil {
			var tmplErr *TemplateError
			if !errors.As(err, &tmplErr) {
				err = &TemplateError{Cause: err}
			}
			return "", err
		}
	}

	body := Render(filepath.Base(path), c.now(), c.user(), req.Policy, listing, lines)

	if err := c.fileOps.EnsureDirs(dir); err != nil {
		return "", &EnsureDirsError{Path: dir, Cause: err}
	}
	if err := c.fileOps.WriteFileAtomic(path, []byte(body), 0o644); err != nil {
		return "", &WriteError{Path: path, Cause: err}
	}

	c.logger.Info("readme created", "path", path, "policy", req.Policy)
	for _, fn := range c.onCreated {
		fn(path)
	}
	return path, nil
}

// Render produces the content of a new readme.
func Render(name string, date time.Time, user string, policy Policy, listing, template []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This %s file was generated on %s by %s\n\n", name, date.Format(time.DateOnly), user)

	switch policy {
	case WithFileList:
		writeListing(&b, listing)
	case Template, TemplateWithFileList:
		for _, line := range template {
			b.WriteString(line)
			if policy == TemplateWithFileList && IsListMarker(line) {
				if !strings.HasSuffix(line, "\n") {
					b.WriteByte('\n')
				}
				writeListing(&b, listing)
			}
		}
	}
	return b.String()
}

// IsListMarker reports whether a template line marks where the listing goes.
func IsListMarker(line string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), listMarker)
}

func writeListing(b *strings.Builder, names []string) {
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		// Windows reports DOMAIN\user
		if i := strings.LastIndexByte(u.Username, '\\'); i >= 0 {
			return u.Username[i+1:]
		}
		return u.Username
	}
	for _, key := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return "unknown"
}
