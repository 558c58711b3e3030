// Package errors provides structured error types for cargo-hoist.
//
// Every fatal condition of a hoisting run is reported as an [*Error] carrying
// a machine-readable [Code], a message naming the offending file, and the
// underlying cause. The CLI prints [UserMessage] and maps the error to an
// exit status; tests match on codes with [Is].
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: malformed manifests, workspace declarations and paths
//   - *_NOT_FOUND: missing manifests
//   - IO_ERROR: reading or writing manifests failed
//   - INTERNAL_ERROR: a broken invariant inside the tool
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidManifest, "%s: no [workspace] table", path)
//	if errors.Is(err, errors.ErrCodeInvalidManifest) {
//	    // Handle a malformed manifest
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "failed to write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidManifest  Code = "INVALID_MANIFEST"
	ErrCodeInvalidWorkspace Code = "INVALID_WORKSPACE"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// I/O errors
	ErrCodeIO Code = "IO_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// For *Error types the message is followed by the cause, without the code
// prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}
