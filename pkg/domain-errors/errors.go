// Package domainerrors is the error taxonomy shared by every service.
//
// Services return *Error values; stores return sentinel errors (see
// pkg/platform/sentinel) which services translate at their boundary. The
// transport layer maps a Code to an HTTP status and only ever exposes the
// taxonomy-level message, never a wrapped cause.
package domainerrors

import (
	"context"
	"errors"
	"fmt"
)

// Code classifies an error. Each code maps to exactly one HTTP status.
type Code string

const (
	CodeValidation         Code = "validation_error"
	CodeBadRequest         Code = "bad_request"
	CodeNotFound           Code = "not_found"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeConflict           Code = "conflict"
	CodeExpired            Code = "expired"
	CodeDeliveryFailed     Code = "delivery_failed"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
	CodeInvariantViolation Code = "invariant_violation"

	// Outcome codes refine the classes above for a specific operation.
	CodeExhausted           Code = "exhausted"
	CodeRevoked             Code = "revoked"
	CodeEmailMismatch       Code = "email_mismatch"
	CodeMismatch            Code = "mismatch"
	CodeTooManyAttempts     Code = "too_many_attempts"
	CodeAlreadyUsed         Code = "already_used"
	CodeInvalidToken        Code = "invalid_token"
	CodeElectionNotActive   Code = "election_not_active"
	CodeAlreadyFinal        Code = "already_final"
	CodeChangeLimitExceeded Code = "change_limit_exceeded"
)

// Retryable reports whether a caller may retry the same request unchanged.
func (c Code) Retryable() bool {
	switch c {
	case CodeDeliveryFailed, CodeTimeout, CodeConflict:
		return true
	}
	return false
}

// Error is a taxonomy error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given code and caller-safe message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and caller-safe message to an underlying error.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// FromStore wraps an infrastructure failure. Deadline and cancellation errors
// become CodeTimeout so callers see a retryable failure instead of a 500.
func FromStore(err error, msg string) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Wrap(err, CodeTimeout, "store operation timed out")
	}
	return Wrap(err, CodeInternal, msg)
}

// As extracts the outermost *Error from err.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether the outermost domain error in err carries code.
func HasCode(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// Is is an alias of HasCode kept for handler readability.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the code of err, CodeInternal for foreign errors.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeInternal
}
