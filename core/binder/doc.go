// Package binder consumes HTTP request bodies.
//
// Read picks one strategy per request from the Content-Type header:
//
//   - no Content-Type: nothing is read
//   - application/json: the body is buffered and decoded into an untyped
//     value; invalid JSON yields ErrMalformedPayload
//   - application/x-www-form-urlencoded, or any type containing
//     multipart/form-data: the body is handed to a Coordinator
//   - anything else: the body is buffered as raw bytes
//
// # Multipart coordination
//
// A Coordinator streams multipart bodies. Field parts are read inline. Each
// file part is piped to its own goroutine that writes a temporary file named
// with TempFilePrefix in Limits.Dir. Readiness is tracked with a pending
// counter that starts at one for the decoder, is incremented for every file
// part and decremented when the decoder or a file writer finishes. Ready is
// closed exactly once, when the counter reaches zero, so every temporary file
// is complete before the caller sees the Form.
//
//	c := binder.NewCoordinator(binder.DefaultLimits())
//	if err := c.Start(r.Header.Get("Content-Type"), r.Body); err != nil {
//		return err
//	}
//	form, err := c.Wait(ctx)
//
// Exceeding any of the configured Limits fails the whole body with
// ErrUploadLimitExceeded and removes the temporary files already written.
// Files of a successful body are left on disk for the handler.
//
// # Struct binding
//
// Bind decodes query, form or path values into tagged structs.
package binder
