package yarf

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/yarf/core/binder"
	"github.com/dmitrymomot/yarf/core/response"
	"github.com/dmitrymomot/yarf/core/session"
)

// Request lifecycle errors. Each maps to one status code through StatusCode.
var (
	// ErrMethodNotAccepted is returned for HTTP methods the engine does not serve.
	ErrMethodNotAccepted = errors.New("yarf: method not accepted")
	// ErrHandlerResolution is returned when no controller matches the path.
	ErrHandlerResolution = errors.New("yarf: handler resolution failed")
	// ErrActionNotFound is returned when the controller has no action for the dispatch key.
	ErrActionNotFound = errors.New("yarf: action not found")
	// ErrUnhandledFault is returned when a panic is recovered at the lifecycle boundary.
	ErrUnhandledFault = errors.New("yarf: unhandled fault")
	// ErrActionTimeout is returned when the request deadline passes before the response is complete.
	ErrActionTimeout = errors.New("yarf: request deadline exceeded")
	// ErrNilLoader is returned by New without a controller loader.
	ErrNilLoader = errors.New("yarf: controller loader is required")

	ErrMalformedPayload          = binder.ErrMalformedPayload
	ErrUploadLimitExceeded       = binder.ErrUploadLimitExceeded
	ErrSessionStore              = session.ErrStore
	ErrSessionStoreUninitialized = session.ErrStoreUninitialized
	ErrViewNotFound              = response.ErrViewNotFound
)

// StatusCode maps a lifecycle error to the status written for it.
// Unknown errors are server errors.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMalformedPayload):
		return http.StatusBadRequest
	case errors.Is(err, ErrViewNotFound):
		return http.StatusNotAcceptable
	case errors.Is(err, ErrMethodNotAccepted),
		errors.Is(err, ErrActionNotFound),
		errors.Is(err, ErrSessionStoreUninitialized):
		return http.StatusNotImplemented
	case errors.Is(err, ErrHandlerResolution),
		errors.Is(err, ErrUploadLimitExceeded),
		errors.Is(err, ErrSessionStore),
		errors.Is(err, ErrUnhandledFault),
		errors.Is(err, ErrActionTimeout):
		return http.StatusInternalServerError
	}
	return response.StatusOf(err)
}
