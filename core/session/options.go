package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/yarf/core/cookie"
)

// Option configures a Manager.
type Option func(*Manager)

// WithCookieName sets the cookie carrying the session id.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.cookieName = name
		}
	}
}

// WithTTL sets the idle lifetime of sessions. It also becomes the cookie
// max-age unless the cookie options set one.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithCookieOptions sets the attributes of the session cookie.
func WithCookieOptions(opts cookie.Options) Option {
	return func(m *Manager) {
		m.cookieOpts = opts
	}
}

// WithSigner signs session cookie values and rejects tampered ones.
func WithSigner(s *cookie.Signer) Option {
	return func(m *Manager) {
		m.signer = s
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}
