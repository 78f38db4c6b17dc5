package scan

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrRootRequired  = errors.New("scan root is required")
	ErrTermsRequired = errors.New("at least one search term is required")
)

// StatError is returned when the scan root cannot be stat'ed.
type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause)
}
func (e *StatError) Unwrap() error { return e.Cause }
func (e *StatError) IOError() bool { return true }

// NotDirectoryError is returned when the scan root is not a directory.
type NotDirectoryError struct {
	Path string
}

func (e *NotDirectoryError) Error() string {
	return fmt.Sprintf("%s is not a directory", e.Path)
}
func (e *NotDirectoryError) InvalidInput() bool { return true }

// ListError is returned when the scan root itself cannot be listed.
type ListError struct {
	Path  string
	Cause error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("failed to list %s: %v", e.Path, e.Cause)
}
func (e *ListError) Unwrap() error { return e.Cause }
func (e *ListError) IOError() bool { return true }

// ListFileError is returned when the readme list file cannot be read or written.
type ListFileError struct {
	Path  string
	Cause error
}

func (e *ListFileError) Error() string {
	return fmt.Sprintf("readme list %s: %v", e.Path, e.Cause)
}
func (e *ListFileError) Unwrap() error { return e.Cause }
func (e *ListFileError) IOError() bool { return true }
