package session

import (
	"time"

	"github.com/dmitrymomot/yarf/core/cookie"
)

// DefaultCookieName is the cookie carrying the session id.
const DefaultCookieName = "yjs"

// DefaultTTL is how long an idle session is retained by stores that expire records.
const DefaultTTL = 7200 * time.Second

// Config holds environment-based session configuration.
type Config struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"yjs"`
	TTLSeconds int    `env:"SESSION_TTL_SECONDS" envDefault:"7200"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName: DefaultCookieName,
		TTLSeconds: int(DefaultTTL / time.Second),
	}
}

// TTL returns the configured idle lifetime.
func (c Config) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return DefaultTTL
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// NewFromConfig creates a Manager for store using cfg and the cookie settings in cc.
func NewFromConfig(store Store, cfg Config, cc cookie.Config, opts ...Option) (*Manager, error) {
	signer, err := cc.Signer()
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithCookieName(cfg.CookieName),
		WithTTL(cfg.TTL()),
		WithCookieOptions(cc.Options()),
	}
	if signer != nil {
		base = append(base, WithSigner(signer))
	}

	return NewManager(store, append(base, opts...)...), nil
}
