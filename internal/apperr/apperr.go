// Package apperr defines the error kinds callers branch on. Every failure that
// crosses a service boundary is either one of these kinds or is treated as
// KindInternal.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindGone
	KindInvalidState
	KindUpstreamUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindGone:
		return "gone"
	case KindInvalidState:
		return "invalid_state"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	default:
		return "internal_error"
	}
}

// HTTPStatus maps a kind to its response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalid, KindInvalidState:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindGone:
		return http.StatusGone
	case KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a kind, a caller-safe message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to err. A nil err yields nil.
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}

	return &Error{Kind: kind, Message: message, Err: err}
}

func Invalid(format string, args ...any) *Error { return New(KindInvalid, format, args...) }

func Unauthorized(format string, args ...any) *Error {
	return New(KindUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *Error { return New(KindForbidden, format, args...) }

func NotFound(format string, args ...any) *Error { return New(KindNotFound, format, args...) }

func Gone(format string, args ...any) *Error { return New(KindGone, format, args...) }

func InvalidState(format string, args ...any) *Error {
	return New(KindInvalidState, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the caller-safe message for err. Internal errors never leak
// their cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}

	return "internal error"
}
