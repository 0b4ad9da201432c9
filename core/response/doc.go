// Package response finalizes HTTP responses for controller actions.
//
// A Finalizer is created per request and guards a single completion: the
// first of Complete, Fail or Abort performs its work and every later call is
// a no-op that returns false. Complete negotiates the result against the
// Accept header:
//
//   - Accept preferring application/json: the result is JSON encoded
//     (nil produces an empty body)
//   - string: sent as text/html
//   - []byte or io.Reader: streamed verbatim; a missing Content-Type is logged
//   - nil: empty body
//   - anything else: rendered through Views for the controller action;
//     a missing view yields 406 Not Acceptable
//
// Handler headers are merged into the response except cookie headers, which
// are dropped and logged; cookies reach the client only through the
// Response.Cookies list. A WithBeforeSend hook runs before headers are sent
// and turns the response into a status-only 500 when it fails.
//
// Error responses carry a status code and no body.
package response
