// Package errors provides structured error types for recoveryflow.
//
// Every failure of a diagram run carries a machine-readable [Code] so the CLI
// can distinguish fatal render failures from the single non-fatal case, a
// viewer that could not be launched after the image was written.
//
// # Error Codes
//
//   - ENGINE_UNAVAILABLE: the layout engine cannot be located or started
//   - RENDER_CONFIG: the engine rejected a configuration value
//   - UNKNOWN_NODE: an edge references a key that was never declared
//   - INVALID_STATE: the diagram was mutated after it was rendered
//   - VIEWER_LAUNCH: the output exists but no viewer could open it (warning)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNode, "edge %s -> %s: unknown node %q", from, to, to)
//	if errors.Is(err, errors.ErrCodeUnknownNode) {
//	    // Handle missing declaration
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderConfig, engineErr, "render %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Render failures (fatal)
	ErrCodeEngineUnavailable Code = "ENGINE_UNAVAILABLE"
	ErrCodeRenderConfig      Code = "RENDER_CONFIG"
	ErrCodeUnknownNode       Code = "UNKNOWN_NODE"
	ErrCodeInvalidState      Code = "INVALID_STATE"

	// Warnings (non-fatal)
	ErrCodeViewerLaunch Code = "VIEWER_LAUNCH"

	// Input and internal errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsWarning reports whether err is a non-fatal condition. Only viewer launch
// failures qualify: by the time they happen the artifact is already on disk.
func IsWarning(err error) bool {
	return Is(err, ErrCodeViewerLaunch)
}
