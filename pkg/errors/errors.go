// Package errors provides structured error types for typespub.
//
// This package defines error codes and types that enable:
//   - Separating per-package failures from fatal run failures
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//
// # Error Codes
//
// Per-package failures are captured by the tester and reported after the
// batch completes:
//   - VALIDATION_FAILED: a build-config or metadata rule was violated
//   - TOOL_FAILED: the installer, compiler or linter exited non-zero
//
// Fatal failures abort the run immediately:
//   - REGISTRY_INCONSISTENCY: a live package is deprecated in the registry
//   - INVALID_VERSION: a required version string could not be parsed
//   - MISSING_VERSION: version info was requested for an unknown package
//
// # Usage
//
//	err := errors.New(errors.ErrCodeValidation, "Expected %q in compilerOptions", key)
//	if errors.Is(err, errors.ErrCodeValidation) {
//	    // Report against the package and continue
//	}
//
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Per-package failures
	ErrCodeValidation Code = "VALIDATION_FAILED"
	ErrCodeTool       Code = "TOOL_FAILED"
	ErrCodeTest       Code = "TEST_FAILURE"

	// Fatal run failures
	ErrCodeRegistryInconsistency Code = "REGISTRY_INCONSISTENCY"
	ErrCodeInvalidVersion        Code = "INVALID_VERSION"
	ErrCodeMissingVersion        Code = "MISSING_VERSION"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"

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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err must abort a run rather than being reported
// against a single package. A TEST_FAILURE aggregate is not fatal: every
// package ran and the failures are listed one per package.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeValidation, ErrCodeTool, ErrCodeTest:
		return false
	}
	return err != nil
}
