// Package errors provides structured error types for snipbook.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across all subcommands
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Geometry and layout failures are deterministic input defects, never
// transient conditions, so there is no retry machinery here. Each code
// identifies which stage of the pipeline rejected its input:
//   - EMPTY_INPUT, SHAPE_MISMATCH: stack reduction (meld)
//   - INVALID_REGION, INVALID_COLOR: region extraction and autocrop (snip)
//   - INVALID_SIZE, OVERSIZED_INPUT: page layout (merge)
//   - IO_FAILURE: opaque decode/encode/write failures at the file boundary
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRegion, "region %d: left >= right", i)
//	if errors.Is(err, errors.ErrCodeInvalidRegion) {
//	    // Handle malformed rectangle
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIOFailure, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different failure categories.
const (
	// Stack reduction errors
	ErrCodeEmptyInput    Code = "EMPTY_INPUT"
	ErrCodeShapeMismatch Code = "SHAPE_MISMATCH"

	// Region extraction and autocrop errors
	ErrCodeInvalidRegion Code = "INVALID_REGION"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"

	// Page layout errors
	ErrCodeInvalidSize    Code = "INVALID_SIZE"
	ErrCodeOversizedInput Code = "OVERSIZED_INPUT"

	// General input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// File boundary errors (decode, encode, write)
	ErrCodeIOFailure Code = "IO_FAILURE"
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
