// Package app wires the abbreviation engine into an editing session and a
// terminal front end.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the terminal loop should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNoPath indicates a save was requested for a session with no file.
	ErrNoPath = errors.New("session has no file path")
)

// OperationError records which operation on which target failed.
type OperationError struct {
	Op     string // e.g. "save", "undo", "insert"
	Target string // file path or session id
	Err    error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
