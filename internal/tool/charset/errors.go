package charset

import (
	"errors"
	"fmt"
)

// ErrUnknownEncoding is returned when asked to decode with Unknown.
var ErrUnknownEncoding = errors.New("unknown encoding")

// SniffError is returned when the leading bytes could not be read.
type SniffError struct {
	Cause error
}

func (e *SniffError) Error() string {
	return fmt.Sprintf("failed to read leading bytes: %v", e.Cause)
}

func (e *SniffError) Unwrap() error {
	return e.Cause
}

func (e *SniffError) IOError() bool {
	return true
}

// UnsupportedError is returned for encodings that are recognised but cannot be
// decoded, and for charset labels that resolve to nothing.
type UnsupportedError struct {
	Name string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported encoding %q", e.Name)
}

func (e *UnsupportedError) InvalidInput() bool {
	return true
}

// InvalidDataError is returned when data is not valid in the named encoding.
type InvalidDataError struct {
	Name  string
	Cause error
}

func (e *InvalidDataError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("data is not valid %s: %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("data is not valid %s", e.Name)
}

func (e *InvalidDataError) Unwrap() error {
	return e.Cause
}

func (e *InvalidDataError) InvalidInput() bool {
	return true
}
