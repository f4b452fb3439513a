package ecode

import (
	"errors"
	"fmt"
)

// Error is a failure that already knows its business code.
type Error struct {
	Code    int
	Message string
	cause   error
}

// New creates a coded error.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Error implements error.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of e with cause attached.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Code: e.Code, Message: e.Message, cause: cause}
}

// Withf returns a copy of e with a formatted message.
func (e *Error) Withf(format string, args ...any) *Error {
	return &Error{Code: e.Code, Message: fmt.Sprintf(format, args...), cause: e.cause}
}

// Is reports whether err carries the given business code.
func Is(err error, code int) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Sentinel errors shared by the request pipeline and the stores.
var (
	ErrNotFound      = New(NothingFound, "resource not found")
	ErrConflict      = New(Conflict, "the post was modified by another caller; reload and retry")
	ErrEmptyBody     = New(RequestErr, "request body cannot be empty")
	ErrInvalidFormat = New(RequestErr, "invalid format")
	ErrUninterpreted = New(RequestErr, "unable to interpret body")
	ErrIDMismatch    = New(ParamErr, "route id and body id do not match")
	ErrInvalidID     = New(ParamErr, "invalid post id")
	ErrTooLarge      = New(PayloadTooLarge, "request body too large")
)
