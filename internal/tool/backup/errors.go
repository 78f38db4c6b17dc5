package backup

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrPathRequired = errors.New("path is required")
	ErrNoPrimary    = errors.New("file to back up does not exist")
)

// StatError is returned when the primary file cannot be stat'ed.
type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause)
}
func (e *StatError) Unwrap() error { return e.Cause }
func (e *StatError) IOError() bool { return true }

// IsDirectoryError is returned when the path to save is a directory.
type IsDirectoryError struct {
	Path string
}

func (e *IsDirectoryError) Error() string {
	return fmt.Sprintf("%s is a directory", e.Path)
}
func (e *IsDirectoryError) InvalidInput() bool { return true }

// RotationError is returned when a rename or delete inside the backup chain
// fails. The save that triggered the rotation is abandoned.
type RotationError struct {
	Op    string // "remove" or "rename"
	From  string
	To    string
	Cause error
}

func (e *RotationError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("backup rotation failed to %s %s: %v", e.Op, e.From, e.Cause)
	}
	return fmt.Sprintf("backup rotation failed to %s %s to %s: %v", e.Op, e.From, e.To, e.Cause)
}
func (e *RotationError) Unwrap() error { return e.Cause }
func (e *RotationError) IOError() bool { return true }

// WriteError is returned when writing the new content fails. Any rotation has
// already completed, so only the new edits are lost.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}
func (e *WriteError) Unwrap() error { return e.Cause }
func (e *WriteError) IOError() bool { return true }
