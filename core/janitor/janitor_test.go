package janitor_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/yarf/core/binder"
	"github.com/dmitrymomot/yarf/core/janitor"
)

func touch(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	mod := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(file, mod, mod))
	return file
}

func TestJanitor_Sweep(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stale := touch(t, dir, binder.TempFilePrefix+"old", 2*time.Hour)
	fresh := touch(t, dir, binder.TempFilePrefix+"new", time.Minute)
	other := touch(t, dir, "unrelated.txt", 5*time.Hour)

	j, err := janitor.New(dir, janitor.Config{Schedule: "@every 1m", MaxAge: time.Hour})
	require.NoError(t, err)

	removed, err := j.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, other)
}

func TestJanitor_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stale := touch(t, dir, binder.TempFilePrefix+"old", 2*time.Hour)

	var sweeps atomic.Int32
	j, err := janitor.New(dir, janitor.Config{Schedule: "@every 1s", MaxAge: time.Hour},
		janitor.WithSweepHook(func(int) { sweeps.Add(1) }))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx)() }()

	require.Eventually(t, func() bool { return sweeps.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
	assert.NoFileExists(t, stale)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestNew_InvalidSchedule(t *testing.T) {
	t.Parallel()

	_, err := janitor.New(t.TempDir(), janitor.Config{Schedule: "every now and then"})
	assert.ErrorIs(t, err, janitor.ErrInvalidSchedule)
}
