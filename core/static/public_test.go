package static_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/yarf/core/static"
)

func newPublic(t *testing.T) *static.Public {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "css", "site.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "robots.txt"), []byte("User-agent: *"), 0o644))

	p, err := static.NewPublic(root)
	require.NoError(t, err)
	return p
}

func TestPublic_Serve(t *testing.T) {
	t.Parallel()

	p := newPublic(t)

	t.Run("serves file with content type", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		served := p.Serve(w, httptest.NewRequest(http.MethodGet, "/css/site.css", nil))

		assert.True(t, served)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "body{}", w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
	})

	t.Run("head has no body", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		assert.True(t, p.Serve(w, httptest.NewRequest(http.MethodHead, "/robots.txt", nil)))
		assert.Empty(t, w.Body.String())
	})

	t.Run("falls through", func(t *testing.T) {
		t.Parallel()
		for _, target := range []string{"/", "/css", "/missing.js", "/css/../../etc/passwd"} {
			w := httptest.NewRecorder()
			assert.False(t, p.Serve(w, httptest.NewRequest(http.MethodGet, target, nil)), target)
		}
	})

	t.Run("other methods fall through", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		assert.False(t, p.Serve(w, httptest.NewRequest(http.MethodPost, "/robots.txt", nil)))
	})
}

func TestNewPublic(t *testing.T) {
	t.Parallel()

	_, err := static.NewPublic(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = static.NewPublic(file)
	assert.ErrorIs(t, err, static.ErrNotDirectory)
}
