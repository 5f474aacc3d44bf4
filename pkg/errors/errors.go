// Package errors provides structured error types for fpgroups.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Distinguishing resource limits from malformed input
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_* and WORD_SYNTAX: input validation failures, detected eagerly
//   - *_LIMIT: a search or table exceeded a caller-imposed bound
//   - NOT_FOUND, TIMEOUT: lookup and cancellation failures
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeWordSyntax, "unmatched parenthesis")
//	if errors.Is(err, errors.ErrCodeWordSyntax) {
//	    // Handle malformed input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput        Code = "INVALID_INPUT"
	ErrCodeInvalidWord         Code = "INVALID_WORD"
	ErrCodeWordSyntax          Code = "WORD_SYNTAX"
	ErrCodeInvalidAlphabet     Code = "INVALID_ALPHABET"
	ErrCodeInvalidPresentation Code = "INVALID_PRESENTATION"
	ErrCodeInvalidFormat       Code = "INVALID_FORMAT"

	// Resource limit errors
	ErrCodeSizeLimit   Code = "SIZE_LIMIT"
	ErrCodeChoiceLimit Code = "CHOICE_LIMIT"

	// Lookup and cancellation errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeTimeout  Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsLimit reports whether err is one of the resource-limit errors.
// Callers use it to tell a truncated search from malformed input.
func IsLimit(err error) bool {
	switch GetCode(err) {
	case ErrCodeSizeLimit, ErrCodeChoiceLimit:
		return true
	}
	return false
}

// HTTPStatus maps an error code to the HTTP status used by the API server.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidWord, ErrCodeWordSyntax,
		ErrCodeInvalidAlphabet, ErrCodeInvalidPresentation, ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case ErrCodeSizeLimit, ErrCodeChoiceLimit:
		return http.StatusUnprocessableEntity
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
