package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/yarf/core/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

// ============================================================================
// Error Handling Tests
// ============================================================================

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

// ============================================================================
// Timing Tests
// ============================================================================

func TestElapsed(t *testing.T) {
	t.Parallel()
	start := time.Now().Add(-500 * time.Millisecond)
	attr := logger.Elapsed(start)
	require.Equal(t, "elapsed", attr.Key)
	assert.GreaterOrEqual(t, attr.Value.Duration(), 500*time.Millisecond)
}

// ============================================================================
// Request Lifecycle Tests
// ============================================================================

func TestLifecycleAttrs(t *testing.T) {
	t.Parallel()

	t.Run("controller", func(t *testing.T) {
		t.Parallel()
		attr := logger.Controller("admin/widgets")
		require.Equal(t, "controller", attr.Key)
		assert.Equal(t, "admin/widgets", attr.Value.String())
		assert.True(t, logger.Controller("").Equal(slog.Attr{}))
	})

	t.Run("action id", func(t *testing.T) {
		t.Parallel()
		attr := logger.ActionID("getIndex")
		require.Equal(t, "action_id", attr.Key)
		assert.Equal(t, "getIndex", attr.Value.String())
		assert.True(t, logger.ActionID("").Equal(slog.Attr{}))
	})

	t.Run("session id", func(t *testing.T) {
		t.Parallel()
		attr := logger.SessionID("abc")
		require.Equal(t, "session_id", attr.Key)
		assert.True(t, logger.SessionID("").Equal(slog.Attr{}))
	})

	t.Run("remote addr", func(t *testing.T) {
		t.Parallel()
		attr := logger.RemoteAddr("10.0.0.1", "5555")
		assert.Equal(t, "10.0.0.1:5555", attr.Value.String())
	})
}

func TestHTTPAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "req-1", logger.RequestID("req-1").Value.String())
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))

	assert.Equal(t, "user_agent", logger.UserAgent("curl/8").Key)
	assert.True(t, logger.UserAgent("").Equal(slog.Attr{}))

	d := logger.Duration(time.Second)
	require.Equal(t, "duration", d.Key)
	assert.Equal(t, time.Second, d.Value.Duration())
}

func TestKey(t *testing.T) {
	t.Parallel()

	attr := logger.Key("custom", "value")
	require.Equal(t, "custom", attr.Key)
	assert.Equal(t, "value", attr.Value.Any())

	empty := logger.Key("key", nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestStack(t *testing.T) {
	t.Parallel()
	attr := logger.Stack()
	require.Equal(t, "stack", attr.Key)
	stack := attr.Value.String()
	assert.Contains(t, stack, "TestStack")
	assert.Contains(t, stack, "attr_test.go")
}
