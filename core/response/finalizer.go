package response

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/dmitrymomot/yarf/core/logger"
)

// Response is what an action hands to the finalizer.
type Response struct {
	// Status defaults to 200.
	Status int
	// Header holds handler-set headers. Cookie headers are dropped.
	Header http.Header
	// Cookies are serialized Set-Cookie values, sent in order.
	Cookies []string
	// Result is the action result to negotiate.
	Result any
}

// Finalizer writes exactly one terminal response per request. The first call
// to Complete, Fail or Abort wins; later calls return false and do nothing.
type Finalizer struct {
	w http.ResponseWriter
	r *http.Request

	views      Views
	controller string
	action     string
	beforeSend func(context.Context) error
	statusOf   func(error) int
	logger     *slog.Logger

	gate     atomic.Bool
	finished chan struct{}
	status   int
	err      error
}

// FinalizerOption configures a Finalizer.
type FinalizerOption func(*Finalizer)

// WithViews sets the renderer and the view coordinates used for results that
// are neither strings, streams nor nil.
func WithViews(v Views, controller, action string) FinalizerOption {
	return func(f *Finalizer) {
		f.views = v
		f.controller = controller
		f.action = action
	}
}

// WithBeforeSend registers a hook run by Complete and Fail before headers are
// sent; for Complete, after the body is prepared. A hook error replaces the
// response with a status-only error response.
func WithBeforeSend(fn func(context.Context) error) FinalizerOption {
	return func(f *Finalizer) {
		f.beforeSend = fn
	}
}

// WithStatusMapper sets how Fail maps errors to status codes.
func WithStatusMapper(fn func(error) int) FinalizerOption {
	return func(f *Finalizer) {
		if fn != nil {
			f.statusOf = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) FinalizerOption {
	return func(f *Finalizer) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFinalizer creates a finalizer writing to w for request r.
func NewFinalizer(w http.ResponseWriter, r *http.Request, opts ...FinalizerOption) *Finalizer {
	f := &Finalizer{
		w:        w,
		r:        r,
		statusOf: StatusOf,
		logger:   logger.Discard(),
		finished: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Configure applies options before the response is finalized. It has no
// effect once the gate has fired.
func (f *Finalizer) Configure(opts ...FinalizerOption) {
	if f.gate.Load() {
		return
	}
	for _, opt := range opts {
		opt(f)
	}
}

// Done is closed once the winning call has finished writing.
func (f *Finalizer) Done() <-chan struct{} {
	return f.finished
}

// Finalized reports whether the gate has fired.
func (f *Finalizer) Finalized() bool {
	return f.gate.Load()
}

// Status returns the status written by the winning call, 0 if aborted or pending.
// Safe to call after Done is closed.
func (f *Finalizer) Status() int {
	return f.status
}

// Err returns the error that produced the response, if any.
// Safe to call after Done is closed.
func (f *Finalizer) Err() error {
	return f.err
}

// Complete negotiates and writes resp.
func (f *Finalizer) Complete(resp Response) bool {
	if !f.gate.CompareAndSwap(false, true) {
		return false
	}
	defer close(f.finished)

	ctx := f.r.Context()
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}

	contentType, body, stream, err := f.prepare(resp)
	if f.beforeSend != nil {
		if hookErr := f.beforeSend(ctx); hookErr != nil {
			closeStream(stream)
			f.writeError(ctx, hookErr)
			return true
		}
	}
	if err != nil {
		closeStream(stream)
		f.writeError(ctx, err)
		return true
	}

	header := f.w.Header()
	for name, values := range resp.Header {
		if isCookieHeader(name) {
			f.logger.WarnContext(ctx, "dropped cookie header set by handler",
				logger.Header(name), logger.Controller(f.controller), logger.ActionID(f.action))
			continue
		}
		header[http.CanonicalHeaderKey(name)] = values
	}
	for _, c := range resp.Cookies {
		header.Add("Set-Cookie", c)
	}
	if contentType != "" && header.Get("Content-Type") == "" {
		header.Set("Content-Type", contentType)
	}
	if stream != nil && header.Get("Content-Type") == "" {
		f.logger.WarnContext(ctx, "streaming result without content type",
			logger.Controller(f.controller), logger.ActionID(f.action))
	}

	f.status = status
	f.w.WriteHeader(status)

	if f.r.Method == http.MethodHead {
		closeStream(stream)
		return true
	}

	if stream != nil {
		_, err = io.Copy(f.w, stream)
		closeStream(stream)
	} else if len(body) > 0 {
		_, err = f.w.Write(body)
	}
	if err != nil {
		f.err = err
		f.logger.DebugContext(ctx, "response write failed", logger.Error(err))
	}

	return true
}

// Fail writes a status-only response for err. The before-send hook still
// runs; when it fails, its error decides the status instead.
func (f *Finalizer) Fail(err error) bool {
	if !f.gate.CompareAndSwap(false, true) {
		return false
	}
	defer close(f.finished)

	ctx := f.r.Context()
	if f.beforeSend != nil {
		if hookErr := f.beforeSend(ctx); hookErr != nil {
			f.logger.WarnContext(ctx, "before-send hook failed on error response", logger.Errors(err, hookErr))
			err = hookErr
		}
	}

	f.writeError(ctx, err)
	return true
}

// Abort fires the gate without writing anything, e.g. after the client went away.
func (f *Finalizer) Abort(err error) bool {
	if !f.gate.CompareAndSwap(false, true) {
		return false
	}
	f.err = err
	close(f.finished)
	return true
}

func (f *Finalizer) writeError(ctx context.Context, err error) {
	f.err = err
	f.status = f.statusOf(err)

	if f.status >= http.StatusInternalServerError {
		f.logger.ErrorContext(ctx, "request failed", logger.StatusCode(f.status), logger.Error(err))
	} else {
		f.logger.DebugContext(ctx, "request rejected", logger.StatusCode(f.status), logger.Error(err))
	}

	f.w.WriteHeader(f.status)
}

// prepare turns a result into either a buffered body or a stream.
func (f *Finalizer) prepare(resp Response) (contentType string, body []byte, stream io.Reader, err error) {
	if WantsJSON(f.r.Header.Get("Accept")) {
		if resp.Result == nil {
			return MediaJSON, nil, nil, nil
		}
		body, err := json.Marshal(resp.Result)
		if err != nil {
			return "", nil, nil, ErrInternalServerError.WithError(fmt.Errorf("encode json: %w", err))
		}
		return MediaJSON, body, nil, nil
	}

	switch v := resp.Result.(type) {
	case nil:
		return "", nil, nil, nil
	case string:
		return "text/html; charset=utf-8", []byte(v), nil, nil
	case []byte:
		return "", nil, bytes.NewReader(v), nil
	case io.Reader:
		return "", nil, v, nil
	}

	if f.views == nil {
		return "", nil, nil, ErrNotAcceptable.WithError(ErrNoViews)
	}

	var buf bytes.Buffer
	if err := f.views.Render(&buf, f.controller, f.action, resp.Result); err != nil {
		if errors.Is(err, ErrViewNotFound) {
			return "", nil, nil, ErrNotAcceptable.WithError(err)
		}
		return "", nil, nil, ErrInternalServerError.WithError(err)
	}
	return "text/html; charset=utf-8", buf.Bytes(), nil, nil
}

func isCookieHeader(name string) bool {
	switch http.CanonicalHeaderKey(name) {
	case "Set-Cookie", "Cookie", "Set-Cookie2":
		return true
	}
	return false
}

func closeStream(r io.Reader) {
	if c, ok := r.(io.Closer); ok {
		_ = c.Close()
	}
}
