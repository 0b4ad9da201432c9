package binder_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/yarf/core/binder"
)

type filter struct {
	Query   string   `form:"q"`
	Page    int      `form:"page"`
	Limit   uint     `form:"limit"`
	Ratio   float64  `form:"ratio"`
	Tags    []string `form:"tags"`
	IDs     []int    `form:"ids"`
	Draft   *bool    `form:"draft"`
	Sort    string
	Ignored string `form:"-"`
	hidden  string
}

func TestBind(t *testing.T) {
	t.Parallel()

	t.Run("populates tagged fields", func(t *testing.T) {
		t.Parallel()

		values := url.Values{
			"q":       {"red\r\nshoes\x00"},
			"page":    {"3"},
			"limit":   {"50"},
			"ratio":   {"0.5"},
			"tags":    {"a,b", "c"},
			"ids":     {"1", "2"},
			"draft":   {"on"},
			"sort":    {"name"},
			"Ignored": {"x"},
			"hidden":  {"x"},
		}

		var f filter
		require.NoError(t, binder.Bind(&f, "form", values))

		assert.Equal(t, "redshoes", f.Query)
		assert.Equal(t, 3, f.Page)
		assert.Equal(t, uint(50), f.Limit)
		assert.InDelta(t, 0.5, f.Ratio, 0.0001)
		assert.Equal(t, []string{"a", "b", "c"}, f.Tags)
		assert.Equal(t, []int{1, 2}, f.IDs)
		require.NotNil(t, f.Draft)
		assert.True(t, *f.Draft)
		assert.Equal(t, "name", f.Sort)
		assert.Empty(t, f.Ignored)
		assert.Empty(t, f.hidden)
	})

	t.Run("missing values leave zero", func(t *testing.T) {
		t.Parallel()

		var f filter
		require.NoError(t, binder.Bind(&f, "form", url.Values{}))
		assert.Equal(t, filter{}, f)
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()

		var f filter
		err := binder.Bind(&f, "form", url.Values{"page": {"three"}})
		assert.ErrorIs(t, err, binder.ErrUnsupportedTarget)
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()

		var f filter
		assert.ErrorIs(t, binder.Bind(f, "form", nil), binder.ErrUnsupportedTarget)

		n := 1
		assert.ErrorIs(t, binder.Bind(&n, "form", nil), binder.ErrUnsupportedTarget)
	})
}
