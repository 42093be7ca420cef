// Package domainerrors provides coded errors that services return and the
// HTTP layer translates into status codes. Stores return sentinel errors
// (pkg/platform/sentinel); services wrap them into coded domain errors here.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport mapping.
type Code string

const (
	// CodeValidation marks malformed or missing input.
	CodeValidation Code = "validation"
	// CodeBadRequest marks a structurally invalid request body.
	CodeBadRequest Code = "bad_request"
	// CodeConflict marks a uniqueness violation.
	CodeConflict Code = "conflict"
	// CodeNotFound marks a missing referenced entity.
	CodeNotFound Code = "not_found"
	// CodeIneligible marks a business-rule rejection of an otherwise
	// well-formed request.
	CodeIneligible Code = "ineligible"
	// CodeUnauthorized marks a missing, invalid, or expired token.
	CodeUnauthorized Code = "unauthorized"
	// CodeInvalidCredentials marks a failed login. Deliberately does not
	// distinguish unknown email from wrong password.
	CodeInvalidCredentials Code = "invalid_credentials"
	// CodeInternal marks anything unexpected. Its message is never
	// surfaced to callers.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with a caller-facing message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause. The cause stays
// reachable through errors.Is/As but is never rendered to API clients.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		if err == nil {
			return false
		}
	}
	return false
}

// Is delegates to errors.Is; kept so call sites can stay on one import.
func Is(err, target error) bool { return errors.Is(err, target) }

// CodeOf returns the outermost code carried by err, or CodeInternal when err
// is not a domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the caller-facing message of err, or a generic message
// when err is not a domain error.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "Server error"
}
