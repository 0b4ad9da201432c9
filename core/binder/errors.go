package binder

import "errors"

var (
	// ErrMalformedPayload indicates a body that cannot be decoded for its
	// declared content type (invalid JSON, broken multipart framing).
	ErrMalformedPayload = errors.New("binder: malformed request payload")

	// ErrUploadLimitExceeded indicates a body over one of the configured limits
	// (parts, fields, files or byte sizes). The request must not proceed.
	ErrUploadLimitExceeded = errors.New("binder: upload limit exceeded")

	// ErrAlreadyStarted is returned when a Coordinator is started twice.
	ErrAlreadyStarted = errors.New("binder: coordinator already started")

	// ErrNotStarted is returned when waiting on a Coordinator that never started.
	ErrNotStarted = errors.New("binder: coordinator not started")

	// ErrUnsupportedTarget is returned by Bind for targets that are not a
	// pointer to struct, or for field kinds it cannot decode.
	ErrUnsupportedTarget = errors.New("binder: unsupported bind target")
)
