package file

import (
	"errors"
	"fmt"

	"github.com/Cyclone1070/bioview/internal/tool/charset"
)

// DecodeErrorPlaceholder is shown in place of content that could not be decoded.
const DecodeErrorPlaceholder = "Error: Unable to decode file."

// -- Sentinels --

var (
	ErrPathRequired = errors.New("path is required")
)

// StatError is returned when the file cannot be stat'ed.
type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause)
}
func (e *StatError) Unwrap() error { return e.Cause }
func (e *StatError) IOError() bool { return true }

// IsDirectoryError is returned when a directory is loaded as text.
type IsDirectoryError struct {
	Path string
}

func (e *IsDirectoryError) Error() string {
	return fmt.Sprintf("%s is a directory", e.Path)
}
func (e *IsDirectoryError) InvalidInput() bool { return true }

// TooLargeError is returned when the file exceeds the configured size limit.
type TooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s is too large (size %d, limit %d)", e.Path, e.Size, e.Limit)
}
func (e *TooLargeError) InvalidInput() bool { return true }

// ReadError is returned when reading the file content fails.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Cause)
}
func (e *ReadError) Unwrap() error { return e.Cause }
func (e *ReadError) IOError() bool { return true }

// DecodeError is returned when the file could not be sniffed, or when neither
// the sniffed encoding nor the fallback encoding could decode it.
type DecodeError struct {
	Path     string
	Encoding charset.Encoding
	Fallback string
	Cause    error
}

func (e *DecodeError) Error() string {
	if e.Encoding == charset.Unknown {
		return fmt.Sprintf("cannot decode %s: encoding unknown: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("cannot decode %s as %s or %s: %v", e.Path, e.Encoding, e.Fallback, e.Cause)
}
func (e *DecodeError) Unwrap() error { return e.Cause }

// Placeholder returns the text a viewer should show for a failed load: the
// decode placeholder for decode failures, the error text otherwise.
func Placeholder(err error) string {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return DecodeErrorPlaceholder
	}
	return "Error: " + err.Error()
}
