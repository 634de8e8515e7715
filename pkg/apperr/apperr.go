package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the response categories the API
// exposes to clients.
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindUnauthorized
	KindNotFound
	KindConflict
	KindInternal
)

// Error is a typed service error carrying a stable numeric code.
// Codes are part of the API contract: every failure branch has a unique
// 7-digit code so clients and tests can disambiguate without string matching.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	wrapped error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s (code %d): %v", e.Message, e.Code, e.wrapped)
	}
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

// New creates a typed error.
func New(kind Kind, code int, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap creates a typed error preserving the underlying cause for logs.
// The cause is never rendered into API responses.
func Wrap(kind Kind, code int, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, wrapped: err}
}

// CodeStorageFailure is the catch-all code for masked storage errors.
const CodeStorageFailure = 1009999

// Mask converts a storage-layer error into a generic bad-request error.
// Raw database error details must never reach the caller.
func Mask(err error) *Error {
	return Wrap(KindBadRequest, CodeStorageFailure, "something went wrong", err)
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// KindOf returns the Kind of an error, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// CodeOf returns the numeric code of an error, or 0 for untyped errors.
func CodeOf(err error) int {
	if e, ok := As(err); ok {
		return e.Code
	}
	return 0
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
