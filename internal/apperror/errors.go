// Package apperror defines the closed set of API-facing errors returned by the
// query layer and the normalizer that maps storage failures onto them.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the outward API error categories.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
)

// String returns the metric label of the kind.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Sentinel errors matched by errors.Is against any *Error of the same kind.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("resource not found")
	ErrInternal   = errors.New("internal server error")
)

// Error is the typed failure every layer below the HTTP handlers reports.
// Details is safe to show to API clients; Err is only ever logged.
type Error struct {
	Kind    Kind
	Details string
	Err     error
}

// Error returns a message combining the category, the details and the cause.
func (e *Error) Error() string {
	msg := e.Message()
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Err != nil {
		msg += " (cause: " + e.Err.Error() + ")"
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindBadRequest:
		return ErrBadRequest
	case KindNotFound:
		return ErrNotFound
	default:
		return ErrInternal
	}
}

// Status returns the HTTP status code mirrored into the envelope's code field.
func (e *Error) Status() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the stable, client-facing message for the error's kind.
func (e *Error) Message() string {
	switch e.Kind {
	case KindBadRequest:
		return "Bad request"
	case KindNotFound:
		return "Resource not found"
	default:
		return "Internal server error"
	}
}

// BadRequest returns a KindBadRequest error with formatted details.
func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Details: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error with formatted details.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Details: fmt.Sprintf(format, args...)}
}

// NotFoundIn is the error reported when value is absent from column of table.
func NotFoundIn(table, column string, value any) *Error {
	return NotFound("%s '%v' was not found in %s", column, value, table)
}

// MissingField reports a required payload property that was not supplied.
func MissingField(name string) *Error {
	return BadRequest("Missing required field: %s", name)
}

// Internal wraps err as an internal error. Its details are never exposed.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Err: err}
}

// IsBadRequest reports whether err is classified as a bad request.
func IsBadRequest(err error) bool { return errors.Is(err, ErrBadRequest) }

// IsNotFound reports whether err is classified as not found.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
