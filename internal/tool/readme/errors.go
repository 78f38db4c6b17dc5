package readme

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrFileExists   = errors.New("file already exists")
	ErrPathRequired = errors.New("path is required")
	ErrNoSource     = errors.New("no source configured")
)

// UnknownPolicyError is returned for an unrecognised policy name.
type UnknownPolicyError struct {
	Value string
}

func (e *UnknownPolicyError) Error() string {
	return fmt.Sprintf("unknown readme policy %q (want empty, files, template or template-files)", e.Value)
}
func (e *UnknownPolicyError) InvalidInput() bool { return true }

// StatError is returned when the target path cannot be stat'ed.
type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause)
}
func (e *StatError) Unwrap() error { return e.Cause }
func (e *StatError) IOError() bool { return true }

// IsDirectoryError is returned when the target path is a directory.
type IsDirectoryError struct {
	Path string
}

func (e *IsDirectoryError) Error() string {
	return fmt.Sprintf("%s is a directory", e.Path)
}
func (e *IsDirectoryError) InvalidInput() bool { return true }

// ListingError is returned when the directory listing cannot be produced.
type ListingError struct {
	Dir   string
	Cause error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("failed to list %s: %v", e.Dir, e.Cause)
}
func (e *ListingError) Unwrap() error { return e.Cause }
func (e *ListingError) IOError() bool { return true }

// TemplateError is returned when the template document cannot be read.
type TemplateError struct {
	Name  string
	Cause error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("failed to read template %s: %v", e.Name, e.Cause)
}
func (e *TemplateError) Unwrap() error { return e.Cause }
func (e *TemplateError) IOError() bool { return true }

// EnsureDirsError is returned when the parent directory cannot be created.
type EnsureDirsError struct {
	Path  string
	Cause error
}

func (e *EnsureDirsError) Error() string {
	return fmt.Sprintf("failed to create directory %s: %v", e.Path, e.Cause)
}
func (e *EnsureDirsError) Unwrap() error { return e.Cause }
func (e *EnsureDirsError) IOError() bool { return true }

// WriteError is returned when writing the new readme fails.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}
func (e *WriteError) Unwrap() error { return e.Cause }
func (e *WriteError) IOError() bool { return true }
