package router_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/yarf/core/registry"
	"github.com/dmitrymomot/yarf/core/router"
)

func newRegistry(t *testing.T, paths ...string) *registry.Registry[string] {
	t.Helper()
	loader := registry.NewMapLoader[string](nil)
	for _, p := range paths {
		loader.Register(p, "h:"+p)
	}
	reg, err := registry.New[string](loader)
	require.NoError(t, err)
	return reg
}

func TestSplit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{}, router.Split("/"))
	assert.Equal(t, []string{}, router.Split(""))
	assert.Equal(t, []string{"a", "b"}, router.Split("//a///b/"))
	assert.Equal(t, []string{"widgets", "Edit"}, router.Split("/widgets/Edit"))
}

func TestResolve(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, "index", "widgets", "admin/users", "admin/users/roles")
	ctx := context.Background()

	tests := []struct {
		name     string
		segments []string
		wantPath string
		wantRest []string
	}{
		{"empty resolves index", []string{}, "index", []string{}},
		{"single segment", []string{"widgets"}, "widgets", []string{}},
		{"remainder kept", []string{"widgets", "Edit", "7"}, "widgets", []string{"Edit", "7"}},
		{"walks through directory", []string{"admin", "users", "list"}, "admin/users", []string{"list"}},
		{"first match wins", []string{"admin", "users", "roles"}, "admin/users", []string{"roles"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, rest, err := router.Resolve(ctx, reg, tt.segments)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, d.Path)
			assert.Equal(t, "h:"+tt.wantPath, d.Handler)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestResolve_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no prefix matches", func(t *testing.T) {
		t.Parallel()
		reg := newRegistry(t, "widgets")
		_, _, err := router.Resolve(ctx, reg, []string{"gadgets", "x"})
		assert.ErrorIs(t, err, router.ErrNotFound)
	})

	t.Run("directory without deeper module", func(t *testing.T) {
		t.Parallel()
		reg := newRegistry(t, "admin/users")
		_, _, err := router.Resolve(ctx, reg, []string{"admin"})
		assert.ErrorIs(t, err, router.ErrNotFound)
	})

	t.Run("no index handler", func(t *testing.T) {
		t.Parallel()
		reg := newRegistry(t, "widgets")
		_, _, err := router.Resolve(ctx, reg, nil)
		assert.ErrorIs(t, err, router.ErrNotFound)
	})

	t.Run("unusable module", func(t *testing.T) {
		t.Parallel()
		loader := registry.NewMapLoader(func(s string) bool { return s != "" })
		loader.Register("broken", "")
		reg, err := registry.New[string](loader)
		require.NoError(t, err)

		_, _, err = router.Resolve(ctx, reg, []string{"broken"})
		assert.ErrorIs(t, err, router.ErrNotFound)
	})

	t.Run("infrastructure errors are not misses", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("disk unavailable")
		reg, err := registry.New[string](registry.LoaderFunc[string](func(context.Context, string) (string, error) {
			return "", boom
		}))
		require.NoError(t, err)

		_, _, err = router.Resolve(ctx, reg, []string{"x"})
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, router.ErrNotFound)
	})

	t.Run("nil resolver", func(t *testing.T) {
		t.Parallel()
		_, _, err := router.Resolve[string](ctx, nil, []string{"x"})
		assert.ErrorIs(t, err, router.ErrNoResolver)
	})
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, "widgets")
	segments := []string{"widgets", "Edit"}

	_, rest, err := router.Resolve(context.Background(), reg, segments)
	require.NoError(t, err)

	rest[0] = "changed"
	assert.Equal(t, []string{"widgets", "Edit"}, segments)
}

func TestSelectAction(t *testing.T) {
	t.Parallel()

	t.Run("default action", func(t *testing.T) {
		t.Parallel()
		a := router.SelectAction("GET", nil)
		assert.Equal(t, "getIndex", a.ID)
		assert.Equal(t, "index", a.Base)
		assert.Empty(t, a.Remaining)
	})

	t.Run("consumes first segment", func(t *testing.T) {
		t.Parallel()
		in := []string{"edit", "42"}
		a := router.SelectAction("POST", in)
		assert.Equal(t, "postEdit", a.ID)
		assert.Equal(t, []string{"42"}, a.Remaining)
		assert.Equal(t, []string{"edit", "42"}, in)
	})

	t.Run("already capitalized", func(t *testing.T) {
		t.Parallel()
		a := router.SelectAction("OPTIONS", []string{"Edit"})
		assert.Equal(t, "optionsEdit", a.ID)
	})

	t.Run("repeatable", func(t *testing.T) {
		t.Parallel()
		in := []string{"show", "1"}
		assert.Equal(t, router.SelectAction("GET", in), router.SelectAction("GET", in))
	})
}

func TestUpperFirst(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Index", router.UpperFirst("index"))
	assert.Equal(t, "Édit", router.UpperFirst("édit"))
	assert.Equal(t, "404", router.UpperFirst("404"))
	assert.Equal(t, "", router.UpperFirst(""))
}

func TestCutMethod(t *testing.T) {
	t.Parallel()

	methods := []string{"GET", "POST", "OPTIONS"}

	m, b, ok := router.CutMethod("getEdit", methods...)
	assert.True(t, ok)
	assert.Equal(t, "GET", m)
	assert.Equal(t, "Edit", b)

	m, b, ok = router.CutMethod("post2024", methods...)
	assert.True(t, ok)
	assert.Equal(t, "POST", m)
	assert.Equal(t, "2024", b)

	m, b, ok = router.CutMethod("Edit", methods...)
	assert.False(t, ok)
	assert.Empty(t, m)
	assert.Equal(t, "Edit", b)
}
