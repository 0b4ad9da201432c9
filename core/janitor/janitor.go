package janitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/yarf/core/binder"
	"github.com/dmitrymomot/yarf/core/logger"
)

// ErrInvalidSchedule is returned for schedules cron cannot parse.
var ErrInvalidSchedule = errors.New("janitor: invalid schedule")

// Config holds environment-based janitor configuration.
type Config struct {
	Schedule string        `env:"UPLOAD_JANITOR_SCHEDULE" envDefault:"@every 10m"`
	MaxAge   time.Duration `env:"UPLOAD_MAX_AGE" envDefault:"1h"`
}

// DefaultConfig returns the default janitor configuration.
func DefaultConfig() Config {
	return Config{
		Schedule: "@every 10m",
		MaxAge:   time.Hour,
	}
}

// Janitor removes stale temporary upload files on a cron schedule.
type Janitor struct {
	dir      string
	pattern  string
	maxAge   time.Duration
	schedule cron.Schedule
	now      func() time.Time
	logger   *slog.Logger
	onSweep  func(removed int)

	mu      sync.Mutex
	running bool
}

// Option configures a Janitor.
type Option func(*Janitor)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(j *Janitor) {
		if l != nil {
			j.logger = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(j *Janitor) {
		if now != nil {
			j.now = now
		}
	}
}

// WithSweepHook is called after every scheduled sweep with the number of files removed.
func WithSweepHook(fn func(removed int)) Option {
	return func(j *Janitor) {
		j.onSweep = fn
	}
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// New creates a janitor sweeping dir. Files are matched by binder.TempFilePrefix.
func New(dir string, cfg Config, opts ...Option) (*Janitor, error) {
	schedule, err := parser.Parse(cfg.Schedule)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidSchedule, cfg.Schedule, err)
	}

	j := &Janitor{
		dir:      dir,
		pattern:  binder.TempFilePrefix + "*",
		maxAge:   cfg.MaxAge,
		schedule: schedule,
		now:      time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Sweep removes matching files older than the configured max age and returns
// how many were removed.
func (j *Janitor) Sweep(ctx context.Context) (int, error) {
	matches, err := filepath.Glob(filepath.Join(j.dir, j.pattern))
	if err != nil {
		return 0, err
	}

	cutoff := j.now().Add(-j.maxAge)
	removed := 0
	var errs []error

	for _, file := range matches {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		info, err := os.Lstat(file)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		if !info.Mode().IsRegular() || info.ModTime().After(cutoff) {
			continue
		}

		if err := os.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed++
	}

	return removed, errors.Join(errs...)
}

// Run returns a function suitable for errgroup that sweeps on schedule until
// ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) func() error {
	return func() error {
		j.mu.Lock()
		if j.running {
			j.mu.Unlock()
			return nil
		}
		j.running = true
		j.mu.Unlock()

		c := cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
		c.Schedule(j.schedule, cron.FuncJob(func() { j.sweep(ctx) }))

		j.logger.InfoContext(ctx, "upload janitor started", "dir", j.dir, "max_age", j.maxAge)
		c.Start()

		<-ctx.Done()
		<-c.Stop().Done()

		j.mu.Lock()
		j.running = false
		j.mu.Unlock()

		j.logger.Info("upload janitor stopped")
		return nil
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	start := j.now()
	removed, err := j.Sweep(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		j.logger.ErrorContext(ctx, "upload sweep failed", logger.Error(err))
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "removed stale uploads", logger.Count("removed", removed), logger.Elapsed(start))
	}
	if j.onSweep != nil {
		j.onSweep(removed)
	}
}
