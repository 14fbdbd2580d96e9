// Package clierr defines structured error types for todocurses commands.
// Errors carry a machine-readable code, a human-readable message,
// optional details and the underlying cause.
package clierr

import (
	"errors"
	"fmt"
)

// Error code constants, uppercase and underscore-separated.
const (
	UsageError    = "USAGE_ERROR"
	IOError       = "IO_ERROR"
	InvalidInput  = "INVALID_INPUT"
	InvalidConfig = "INVALID_CONFIG"
	NotATerminal  = "NOT_A_TERMINAL"
	InternalError = "INTERNAL_ERROR"
)

// Exit codes returned by the CLI.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// Error represents a structured CLI error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error with the given code that wraps err.
func Wrap(code string, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode maps the error code to a process exit status.
func (e *Error) ExitCode() int {
	if e.Code == UsageError {
		return ExitUsage
	}
	return ExitFailure
}

// HasCode reports whether err is (or wraps) an Error with the given code.
func HasCode(err error, code string) bool {
	var cliErr *Error
	if errors.As(err, &cliErr) {
		return cliErr.Code == code
	}
	return false
}

// IO wraps a filesystem failure on path as an IOError.
func IO(op, path string, err error) *Error {
	return Wrap(IOError, err, "%s %s", op, path).
		WithDetails(map[string]any{"path": path, "op": op})
}
