// Package apperror is the transport-agnostic failure taxonomy shared by the
// store, the workflow engine and the query layer.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindNotFound        Kind = "NOT_FOUND"
	KindForbidden       Kind = "FORBIDDEN"
	KindInvalidState    Kind = "INVALID_STATE"
	KindConflict        Kind = "CONFLICT"
	KindUnavailable     Kind = "UNAVAILABLE"
	KindInternal        Kind = "INTERNAL"
)

// Retryable reports whether repeating the same request later may succeed.
// A Conflict is not: the retry sees the state the winner left behind.
func (k Kind) Retryable() bool { return k == KindUnavailable }

type Error struct {
	kind          Kind
	message       string
	currentStatus string
	cause         error
}

func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func Wrap(kind Kind, err error, message string) *Error {
	if err == nil {
		return New(kind, message)
	}
	return &Error{kind: kind, message: message, cause: err}
}

func InvalidArgument(format string, args ...any) *Error {
	return New(KindInvalidArgument, fmt.Sprintf(format, args...))
}

func NotFound(what string) *Error { return New(KindNotFound, what+" not found") }

func Forbidden(message string) *Error { return New(KindForbidden, message) }

func InvalidState(message string) *Error { return New(KindInvalidState, message) }

func Conflict(message string) *Error { return New(KindConflict, message) }

func Unavailable(err error, message string) *Error { return Wrap(KindUnavailable, err, message) }

// WithCurrentStatus records the state the record was in when the request was
// refused, so callers can explain the refusal without a follow-up read.
func (e *Error) WithCurrentStatus(status string) *Error {
	if e == nil {
		return nil
	}
	e.currentStatus = status
	return e
}

func (e *Error) Kind() Kind {
	if e == nil {
		return KindInternal
	}
	return e.kind
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) CurrentStatus() string {
	if e == nil {
		return ""
	}
	return e.currentStatus
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts the first *Error in err's chain.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return nil
}

// KindOf returns the taxonomy kind of err; untyped errors are internal.
func KindOf(err error) Kind {
	if typed := As(err); typed != nil {
		return typed.kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool { return err != nil && KindOf(err) == kind }
