package yarf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/yarf/core/binder"
	"github.com/dmitrymomot/yarf/core/cookie"
	"github.com/dmitrymomot/yarf/core/logger"
	"github.com/dmitrymomot/yarf/core/metrics"
	"github.com/dmitrymomot/yarf/core/registry"
	"github.com/dmitrymomot/yarf/core/response"
	"github.com/dmitrymomot/yarf/core/router"
	"github.com/dmitrymomot/yarf/core/session"
	"github.com/dmitrymomot/yarf/core/static"
)

// acceptedMethods are the methods the engine serves, in Allow header order.
var acceptedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

// Methods returns the HTTP methods the engine serves.
func Methods() []string {
	return slices.Clone(acceptedMethods)
}

// ControllerLoader loads a controller factory for a logical module path.
type ControllerLoader = registry.Loader[Factory]

// NewControllers returns a loader for programmatically registered controllers.
func NewControllers() *registry.MapLoader[Factory] {
	return registry.NewMapLoader(validFactory)
}

// NewModules returns a loader for controllers declared by controller.yaml
// manifests under root.
func NewModules(root string) *registry.DirLoader[Factory] {
	return registry.NewDirLoader(root, validFactory)
}

func validFactory(f Factory) bool { return f != nil }

// Engine runs the request lifecycle: method check, static files, controller
// resolution, OPTIONS, session, dispatch, body, action and response.
type Engine struct {
	registry   *registry.Registry[*handler]
	sessions   *session.Manager
	public     *static.Public
	views      response.Views
	limits     binder.Limits
	timeout    time.Duration
	metrics    *metrics.Collector
	cookieOpts cookie.Options
	logger     *slog.Logger
}

// New creates an engine resolving controllers through loader.
func New(loader ControllerLoader, opts ...Option) (*Engine, error) {
	if loader == nil {
		return nil, ErrNilLoader
	}

	reg, err := registry.New(compileLoader(loader))
	if err != nil {
		return nil, err
	}

	e := &Engine{
		registry:   reg,
		limits:     binder.DefaultLimits(),
		timeout:    60 * time.Second,
		cookieOpts: cookie.DefaultOptions(),
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Route describes a resolvable controller.
type Route struct {
	Path    string
	Actions []string
}

// Routes resolves each logical path and lists its dispatch keys.
// Paths that do not hold a controller are skipped.
func (e *Engine) Routes(ctx context.Context, paths []string) ([]Route, error) {
	routes := make([]Route, 0, len(paths))
	for _, p := range paths {
		d, err := e.registry.Resolve(ctx, p)
		if registry.IsMiss(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		routes = append(routes, Route{Path: d.Path, Actions: d.Handler.actionKeys()})
	}
	return routes, nil
}

// ServeHTTP implements http.Handler.
func (e *Engine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	tw := response.Track(w)

	parent := r.Context()
	ctx := parent
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, e.timeout)
		defer cancel()
	}
	r = r.WithContext(ctx)

	fin := response.NewFinalizer(tw, r,
		response.WithStatusMapper(StatusCode),
		response.WithLogger(e.logger),
	)

	defer func() {
		if rec := recover(); rec != nil {
			e.logger.ErrorContext(ctx, "panic recovered",
				logger.Method(r.Method), logger.Path(r.URL.Path), logger.Key("panic", rec), logger.Stack())
			fin.Fail(fmt.Errorf("%w: %v", ErrUnhandledFault, rec))
		}
		if tw.Written() {
			elapsed := time.Since(start)
			e.metrics.ObserveRequest(r.Method, tw.Status(), elapsed)
			e.logger.DebugContext(ctx, "request finished",
				logger.Method(r.Method), logger.Path(r.URL.Path),
				logger.StatusCode(tw.Status()), logger.Duration(elapsed))
		}
	}()

	e.logger.InfoContext(ctx, "serving request",
		logger.Method(r.Method), logger.Path(r.URL.Path), remoteAddr(r),
		logger.UserAgent(r.UserAgent()), logger.RequestID(r.Header.Get("X-Request-ID")))

	e.serve(parent, fin, tw, r)
}

func (e *Engine) serve(parent context.Context, fin *response.Finalizer, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !slices.Contains(acceptedMethods, r.Method) {
		fin.Fail(fmt.Errorf("%w: %s", ErrMethodNotAccepted, r.Method))
		return
	}

	if e.public != nil && e.public.Serve(w, r) {
		return
	}

	desc, rest, err := router.Resolve(ctx, e.registry, router.Split(r.URL.Path))
	if err != nil {
		e.fail(parent, fin, fmt.Errorf("%w: %w", ErrHandlerResolution, err))
		return
	}
	h := desc.Handler
	action := router.SelectAction(r.Method, rest)

	if r.Method == http.MethodOptions {
		fin.Complete(response.Response{
			Header: http.Header{"Allow": {strings.Join(h.allow(action.Base), ", ")}},
		})
		return
	}

	cookies := cookie.Parse(r.Header.Get("Cookie"))

	var sess *session.Session
	if e.sessions != nil {
		sess, err = e.sessions.Resolve(ctx, cookies)
		e.metrics.ObserveSession("fetch", err)
		if err != nil {
			e.fail(parent, fin, err)
			return
		}
		fin.Configure(response.WithBeforeSend(func(ctx context.Context) error {
			err := e.sessions.Persist(ctx, sess)
			e.metrics.ObserveSession("save", err)
			return err
		}))
	}

	if !h.has(action.ID) {
		fin.Fail(fmt.Errorf("%w: %s.%s", ErrActionNotFound, desc.Path, action.ID))
		return
	}

	c := &Context{
		ctx:        ctx,
		r:          r,
		fin:        fin,
		controller: desc.Path,
		action:     action.ID,
		params:     action.Remaining,
		query:      r.URL.Query(),
		session:    sess,
		cookies:    cookies,
		cookieOpts: e.cookieOpts,
		header:     http.Header{},
	}
	if sess != nil && sess.SetCookie != "" {
		c.setCookies = append(c.setCookies, sess.SetCookie)
	}

	fin.Configure(response.WithViews(e.views, desc.Path, action.ID))

	run := h.factory().Actions()[action.ID]
	if run == nil {
		fin.Fail(fmt.Errorf("%w: %s.%s", ErrActionNotFound, desc.Path, action.ID))
		return
	}

	body, err := binder.Read(ctx, r, e.limits)
	if err != nil {
		e.fail(parent, fin, err)
		return
	}
	c.body = body

	uploads := 0
	for _, files := range body.Files {
		uploads += len(files)
	}
	e.metrics.AddUploads(uploads)

	e.logger.DebugContext(ctx, "dispatching action",
		logger.Controller(desc.Path), logger.ActionID(action.ID),
		logger.Group("body", logger.Key("strategy", body.Strategy.String()), logger.Count("files", uploads)))

	run(c)

	select {
	case <-fin.Done():
	case <-ctx.Done():
		e.fail(parent, fin, ctx.Err())
		<-fin.Done()
	}
}

// fail finalizes after a stage error. A gone client aborts silently, an
// expired deadline becomes ErrActionTimeout.
func (e *Engine) fail(parent context.Context, fin *response.Finalizer, err error) {
	switch {
	case parent.Err() != nil:
		if fin.Abort(err) {
			e.logger.Debug("client went away", logger.Error(err))
		}
	case errors.Is(err, context.DeadlineExceeded):
		fin.Fail(errors.Join(ErrActionTimeout, err))
	default:
		fin.Fail(err)
	}
}

func remoteAddr(r *http.Request) slog.Attr {
	host, port, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return logger.RemoteAddr(r.RemoteAddr, "")
	}
	return logger.RemoteAddr(host, port)
}
