// Package errors defines the coded errors shared by the flattening library
// and the command-line host.
//
// Every failure carries a [Code]. The first four codes are the outcomes a
// flatten run can report:
//
//   - NO_ACTIVE_CONTEXT: no composition is open; nothing is mutated
//   - EMPTY_SELECTION: nothing is selected; nothing is mutated
//   - NOT_A_PRECOMPOSITION: a selected layer does not qualify and is skipped
//   - UNEXPECTED_HOST_ERROR: a scene-graph call failed mid-run
//
// The rest describe problems with the input around a run: malformed project
// documents, missing files or snapshots, and internal failures.
//
//	err := errors.Wrap(errors.ErrCodeHost, cause, "duplicate layer %s", id)
//	if errors.Is(err, errors.ErrCodeHost) {
//	    // offer undo
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Flattening errors
	ErrCodeNoActiveContext    Code = "NO_ACTIVE_CONTEXT"
	ErrCodeEmptySelection     Code = "EMPTY_SELECTION"
	ErrCodeNotAPrecomposition Code = "NOT_A_PRECOMPOSITION"
	ErrCodeHost               Code = "UNEXPECTED_HOST_ERROR"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidProject Code = "INVALID_PROJECT"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeSnapshotNotFound Code = "SNAPSHOT_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error formats as "CODE: message" followed by the cause, if any.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap returns an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the text shown to the user: the message without its
// code. Host failures append their cause so the underlying message reaches
// the error notification.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil && e.Code == ErrCodeHost {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err aborts a whole run.
// Only NOT_A_PRECOMPOSITION is recoverable; the transformer skips the layer
// and continues with the next selection.
func IsFatal(err error) bool {
	return err != nil && !Is(err, ErrCodeNotAPrecomposition)
}
