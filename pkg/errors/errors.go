// Package errors provides structured error types for tstore.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the registry client, resolver and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages that name the package or field involved
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - NETWORK_*: Network-related errors
//   - PARSE_*: Registry responses that do not match the expected schema
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidReference, "bad dependency reference %q", ref)
//	if errors.Is(err, errors.ErrCodeInvalidReference) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidPackage   Code = "INVALID_PACKAGE"
	ErrCodeInvalidReference Code = "INVALID_REFERENCE"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeMissingField     Code = "MISSING_FIELD"

	// Resource not found errors
	ErrCodePackageNotFound Code = "PACKAGE_NOT_FOUND"

	// Registry response errors
	ErrCodeParse    Code = "PARSE_ERROR"
	ErrCodeRejected Code = "REGISTRY_REJECTED"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Authentication errors
	ErrCodeUnauthorized Code = "UNAUTHORIZED"

	// Resolution errors
	ErrCodeDependencyCycle Code = "DEPENDENCY_CYCLE"

	// Local filesystem errors
	ErrCodeIO Code = "IO_ERROR"
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

// coded is implemented by the typed errors below.
type coded interface {
	error
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a typed error with a
// matching code. The outermost coded error wins.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// As is [errors.As] from the standard library, re-exported so callers can
// use one errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no coded error is found in the chain.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coded:
			return e.Code()
		}
		err = errors.Unwrap(err)
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

// MissingFieldError reports a required publish option that could not be
// resolved from the command line or the config file.
type MissingFieldError struct {
	Field string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required option %q: pass it on the command line or set it in the config file (see 'tstore publish --help')", e.Field)
}

// Code returns the error code for this error type.
func (e *MissingFieldError) Code() Code { return ErrCodeMissingField }

// CycleError reports a dependency graph that revisits a package already on
// the current resolution path. Path lists full names from the root to the
// repeated package, which appears at both ends of the cycle.
type CycleError struct {
	Path []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return "dependency cycle: " + strings.Join(e.Path, " -> ")
}

// Code returns the error code for this error type.
func (e *CycleError) Code() Code { return ErrCodeDependencyCycle }

// RejectedError carries a non-success upload response from the registry.
// Body holds the response body verbatim.
type RejectedError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *RejectedError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("registry rejected upload: status %d", e.Status)
	}
	return e.Body
}

// Code returns ErrCodeUnauthorized for 401/403 responses and
// ErrCodeRejected otherwise.
func (e *RejectedError) Code() Code {
	if e.Status == 401 || e.Status == 403 {
		return ErrCodeUnauthorized
	}
	return ErrCodeRejected
}
