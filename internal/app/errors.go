package app

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrPathRequired    = errors.New("path is required")
	ErrNoWorkFolder    = errors.New("no work folder set; scan a folder first")
	ErrDuplicateAction = errors.New("action already registered")
	ErrInvalidPage     = errors.New("offset and limit must not be negative")
)

// UnknownActionError is returned when dispatching an unregistered name.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q", e.Name)
}
func (e *UnknownActionError) InvalidInput() bool { return true }

// ArgumentError is returned when action arguments cannot be decoded.
type ArgumentError struct {
	Action string
	Cause  error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Action, e.Cause)
}
func (e *ArgumentError) Unwrap() error      { return e.Cause }
func (e *ArgumentError) InvalidInput() bool { return true }

// ResultTypeError is returned by Call when an action returns an unexpected type.
type ResultTypeError struct {
	Action string
	Got    any
}

func (e *ResultTypeError) Error() string {
	return fmt.Sprintf("action %s returned unexpected %T", e.Action, e.Got)
}
