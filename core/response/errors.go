package response

import (
	"errors"
	"net/http"
)

var (
	// ErrViewNotFound is returned by Views when no view exists for an action.
	ErrViewNotFound = errors.New("response: view not found")
	// ErrNoViews is returned when a result needs a view but none are configured.
	ErrNoViews = errors.New("response: no view renderer configured")
)

// HTTPError is an error carrying the status code it should produce.
type HTTPError struct {
	Status int
	Code   string
	cause  error
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.cause != nil {
		return e.Code + ": " + e.cause.Error()
	}
	return e.Code
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// Unwrap returns the cause.
func (e HTTPError) Unwrap() error {
	return e.cause
}

// Is matches any HTTPError with the same status, so wrapped copies still
// match the predefined values.
func (e HTTPError) Is(target error) bool {
	t, ok := target.(HTTPError)
	return ok && t.Status == e.Status
}

// WithError returns a copy of the error wrapping cause.
func (e HTTPError) WithError(cause error) HTTPError {
	e.cause = cause
	return e
}

// Statuses produced by the request lifecycle.
var (
	ErrBadRequest = HTTPError{
		Status: http.StatusBadRequest,
		Code:   "bad_request",
	}
	ErrNotAcceptable = HTTPError{
		Status: http.StatusNotAcceptable,
		Code:   "not_acceptable",
	}
	ErrInternalServerError = HTTPError{
		Status: http.StatusInternalServerError,
		Code:   "internal_server_error",
	}
	ErrNotImplemented = HTTPError{
		Status: http.StatusNotImplemented,
		Code:   "not_implemented",
	}
	ErrServiceUnavailable = HTTPError{
		Status: http.StatusServiceUnavailable,
		Code:   "service_unavailable",
	}
)

// StatusOf returns the status carried by err, or 500 when it carries none.
func StatusOf(err error) int {
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
