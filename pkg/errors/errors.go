// Package errors provides structured error types for tisu.
//
// Every failure in the rewrite engine is reported as an *Error carrying one
// of a small set of machine-readable codes, so that callers (the CLI, the
// HTTP API) can branch on the kind of failure without parsing messages.
//
// # Error Codes
//
// The core engine reports five kinds:
//   - OUT_OF_BOUNDS: a grid access at or beyond the grid dimensions
//   - INVALID_ARGUMENT: malformed construction input
//   - INVALID_MAP_SIZE: pattern/substitute mismatch, or a grid smaller than a pattern
//   - NOT_FOUND: a segmentation scan ran out of rectangle starts
//   - UNEXPECTED: an invariant violation that should never happen
//
// The outer layers add INVALID_FORMAT for undecodable map or JSON input
// and INTERNAL_ERROR for I/O failures.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOutOfBounds, "point %v outside %v", p, size)
//	if errors.Is(err, errors.ErrCodeOutOfBounds) {
//	    // Handle bounds error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Core engine errors
	ErrCodeOutOfBounds     Code = "OUT_OF_BOUNDS"
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeInvalidMapSize  Code = "INVALID_MAP_SIZE"
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeUnexpected      Code = "UNEXPECTED"

	// Format and I/O errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
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

// GetCodeOr is like GetCode but returns fallback when err has no code.
func GetCodeOr(err error, fallback Code) Code {
	if c := GetCode(err); c != "" {
		return c
	}
	return fallback
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

// IsClientError reports whether err was caused by bad input rather than by
// the environment. The HTTP API maps these to 400 responses.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeOutOfBounds, ErrCodeInvalidArgument, ErrCodeInvalidMapSize,
		ErrCodeNotFound, ErrCodeInvalidFormat, ErrCodeInvalidPath:
		return true
	}
	return false
}
