package yarf

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/yarf/core/binder"
	"github.com/dmitrymomot/yarf/core/cookie"
	"github.com/dmitrymomot/yarf/core/metrics"
	"github.com/dmitrymomot/yarf/core/response"
	"github.com/dmitrymomot/yarf/core/session"
	"github.com/dmitrymomot/yarf/core/static"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSessions enables sessions backed by m.
func WithSessions(m *session.Manager) Option {
	return func(e *Engine) {
		e.sessions = m
	}
}

// WithStatic serves files from p before controller resolution.
func WithStatic(p *static.Public) Option {
	return func(e *Engine) {
		e.public = p
	}
}

// WithViews sets the renderer for results that need a view.
func WithViews(v response.Views) Option {
	return func(e *Engine) {
		e.views = v
	}
}

// WithLimits sets body and upload limits.
func WithLimits(l binder.Limits) Option {
	return func(e *Engine) {
		e.limits = l
	}
}

// WithRequestTimeout bounds every request. Zero disables the deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.timeout = d
		}
	}
}

// WithMetrics records request, upload and session metrics in c.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) {
		e.metrics = c
	}
}

// WithCookieOptions sets the defaults used by Context.SetCookie.
func WithCookieOptions(opts cookie.Options) Option {
	return func(e *Engine) {
		e.cookieOpts = opts
	}
}
