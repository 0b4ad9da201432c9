package cookie

import (
	"net/http"
	"strings"
)

// Config provides environment-based configuration for cookie attributes and signing.
type Config struct {
	Secrets  string        `env:"COOKIE_SECRETS" envDefault:""`
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN" envDefault:""`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // SameSiteLaxMode
}

// DefaultConfig returns a Config with secure defaults.
func DefaultConfig() Config {
	return Config{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Options converts the configuration into cookie attributes.
// Zero values fall back to DefaultOptions.
func (c Config) Options() Options {
	opts := DefaultOptions()
	if c.Path != "" {
		opts.Path = c.Path
	}
	opts.Domain = c.Domain
	opts.MaxAge = c.MaxAge
	opts.Secure = c.Secure
	opts.HttpOnly = c.HttpOnly
	if c.SameSite != 0 {
		opts.SameSite = c.SameSite
	}
	return opts
}

// Signer returns a signer for the configured secrets, or nil when no secrets are set.
func (c Config) Signer() (*Signer, error) {
	secrets := c.parseSecrets()
	if len(secrets) == 0 {
		return nil, nil
	}
	return NewSigner(secrets)
}

// parseSecrets splits comma-separated secrets for key rotation support.
// Empty strings are filtered out.
func (c Config) parseSecrets() []string {
	if c.Secrets == "" {
		return nil
	}

	parts := strings.Split(c.Secrets, ",")
	secrets := make([]string, 0, len(parts))

	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			secrets = append(secrets, s)
		}
	}

	return secrets
}
