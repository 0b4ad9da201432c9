package yarf

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrymomot/yarf/core/response"
	"github.com/dmitrymomot/yarf/core/session"
	"github.com/dmitrymomot/yarf/core/static"
)

// Config holds engine settings.
type Config struct {
	// AppRoot holds the Modules and public directories.
	AppRoot         string        `env:"YARF_APP_ROOT" envDefault:"."`
	SessionsEnabled bool          `env:"YARF_SESSIONS_ENABLED" envDefault:"false"`
	RequestTimeout  time.Duration `env:"YARF_REQUEST_TIMEOUT" envDefault:"60s"`
	StaticEnabled   bool          `env:"YARF_STATIC_ENABLED" envDefault:"true"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		AppRoot:        ".",
		RequestTimeout: 60 * time.Second,
		StaticEnabled:  true,
	}
}

// ModulesDir is the root of the controller tree.
func (c Config) ModulesDir() string {
	return filepath.Join(c.AppRoot, "Modules")
}

// PublicDir is the root of the static files.
func (c Config) PublicDir() string {
	return filepath.Join(c.AppRoot, "public")
}

// NewFromConfig creates an engine from cfg. Static files are served from
// PublicDir when enabled and present, views are rendered from ModulesDir.
// With sessions enabled and no WithSessions option, every request fails with
// ErrSessionStoreUninitialized.
func NewFromConfig(loader ControllerLoader, cfg Config, opts ...Option) (*Engine, error) {
	base := []Option{
		WithRequestTimeout(cfg.RequestTimeout),
		WithViews(response.NewTemplateViews(cfg.ModulesDir())),
	}

	if cfg.StaticEnabled {
		public, err := static.NewPublic(cfg.PublicDir())
		switch {
		case err == nil:
			base = append(base, WithStatic(public))
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	e, err := New(loader, append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	if cfg.SessionsEnabled && e.sessions == nil {
		e.sessions = session.NewManager(nil, session.WithLogger(e.logger))
	}

	return e, nil
}
