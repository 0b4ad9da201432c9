package yarf

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrymomot/yarf/core/binder"
	"github.com/dmitrymomot/yarf/core/cookie"
	"github.com/dmitrymomot/yarf/core/response"
	"github.com/dmitrymomot/yarf/core/session"
)

// Context is the per-request capability handed to an action. It exposes the
// request facts gathered by the lifecycle and the means to end the action.
// It implements context.Context, delegating to the request context.
type Context struct {
	ctx context.Context
	r   *http.Request
	fin *response.Finalizer

	controller string
	action     string
	params     []string
	query      url.Values
	body       *binder.Body
	session    *session.Session
	cookies    map[string]string
	cookieOpts cookie.Options

	mu         sync.Mutex
	status     int
	header     http.Header
	setCookies []string
}

// Deadline implements context.Context.
func (c *Context) Deadline() (time.Time, bool) {
	return c.ctx.Deadline()
}

// Done implements context.Context.
func (c *Context) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Err implements context.Context.
func (c *Context) Err() error {
	return c.ctx.Err()
}

// Value implements context.Context.
func (c *Context) Value(key any) any {
	return c.ctx.Value(key)
}

// Request returns the underlying request. Its body has already been consumed.
func (c *Context) Request() *http.Request {
	return c.r
}

// Controller returns the logical path of the resolved controller.
func (c *Context) Controller() string {
	return c.controller
}

// ActionID returns the dispatch key of the running action.
func (c *Context) ActionID() string {
	return c.action
}

// RemoteAddr returns the client host.
func (c *Context) RemoteAddr() string {
	host, _, err := net.SplitHostPort(c.r.RemoteAddr)
	if err != nil {
		return c.r.RemoteAddr
	}
	return host
}

// RemotePort returns the client port, empty when unknown.
func (c *Context) RemotePort() string {
	_, port, err := net.SplitHostPort(c.r.RemoteAddr)
	if err != nil {
		return ""
	}
	return port
}

// Query returns the parsed query string.
func (c *Context) Query() url.Values {
	return c.query
}

// Post returns the urlencoded or multipart fields.
func (c *Context) Post() url.Values {
	return c.body.Fields
}

// Files returns the uploaded files by field name.
func (c *Context) Files() map[string][]binder.UploadedFile {
	return c.body.Files
}

// File returns the first file uploaded under field.
func (c *Context) File(field string) (binder.UploadedFile, bool) {
	files := c.body.Files[field]
	if len(files) == 0 {
		return binder.UploadedFile{}, false
	}
	return files[0], true
}

// Params returns the path segments left after controller and action selection.
func (c *Context) Params() []string {
	return c.params
}

// Param returns the i-th remaining path segment, or "".
func (c *Context) Param(i int) string {
	if i < 0 || i >= len(c.params) {
		return ""
	}
	return c.params[i]
}

// Payload returns the decoded JSON value for JSON bodies, the raw bytes for
// other non-form bodies and nil otherwise.
func (c *Context) Payload() any {
	return c.body.Payload
}

// BindJSON decodes a JSON body into v.
func (c *Context) BindJSON(v any) error {
	if c.body.Strategy != binder.StrategyJSON {
		return fmt.Errorf("%w: not a json body", ErrMalformedPayload)
	}
	if err := json.Unmarshal(c.body.Raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return nil
}

// BindForm copies posted fields into the struct pointed to by v using `form` tags.
func (c *Context) BindForm(v any) error {
	return binder.Bind(v, "form", c.body.Fields)
}

// BindQuery copies query values into the struct pointed to by v using `query` tags.
func (c *Context) BindQuery(v any) error {
	return binder.Bind(v, "query", c.query)
}

// Session returns the mutable session map, nil when sessions are disabled.
// Changes are persisted when the response completes.
func (c *Context) Session() map[string]any {
	if c.session == nil {
		return nil
	}
	return c.session.Data
}

// SessionID returns the id of the current session, empty when disabled.
func (c *Context) SessionID() string {
	if c.session == nil {
		return ""
	}
	return c.session.ID
}

// Cookies returns the incoming cookies.
func (c *Context) Cookies() map[string]string {
	return c.cookies
}

// Cookie returns one incoming cookie.
func (c *Context) Cookie(name string) (string, bool) {
	v, ok := c.cookies[name]
	return v, ok
}

// SetCookie queues a Set-Cookie header. Options override the engine defaults.
func (c *Context) SetCookie(name, value string, opts ...cookie.Option) error {
	header, err := cookie.Serialize(name, value, cookie.Apply(c.cookieOpts, opts...))
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.setCookies = append(c.setCookies, header)
	c.mu.Unlock()
	return nil
}

// SetStatus sets the status sent by Complete. The default is 200.
func (c *Context) SetStatus(code int) {
	c.mu.Lock()
	c.status = code
	c.mu.Unlock()
}

// Header returns the headers sent by Complete. Cookie headers set here are
// dropped; use SetCookie.
func (c *Context) Header() http.Header {
	return c.header
}

// Complete ends the action with result and reports whether this call
// produced the response. Strings are sent as HTML, readers and byte slices
// are streamed, nil sends an empty body, and any other value is rendered by
// the action's view, or encoded as JSON when the client accepts it.
func (c *Context) Complete(result any) bool {
	c.mu.Lock()
	resp := response.Response{
		Status:  c.status,
		Header:  c.header.Clone(),
		Cookies: append([]string(nil), c.setCookies...),
		Result:  result,
	}
	c.mu.Unlock()

	return c.fin.Complete(resp)
}

// Fail ends the action with a status-only response for err.
func (c *Context) Fail(err error) bool {
	return c.fin.Fail(err)
}

// Completed reports whether the response has been finalized.
func (c *Context) Completed() bool {
	return c.fin.Finalized()
}
