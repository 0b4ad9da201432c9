package router

import "errors"

var (
	// ErrNotFound is returned when no path prefix resolves to a handler.
	ErrNotFound = errors.New("router: no handler for path")

	// ErrNoResolver is returned when Resolve is called without a resolver.
	ErrNoResolver = errors.New("router: resolver is required")
)
