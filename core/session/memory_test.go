package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/yarf/core/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(time.Hour)
		rec, err := store.FetchOrCreate(ctx, "", now)
		require.NoError(t, err)
		assert.True(t, session.ValidID(rec.ID))

		rec.Data["user"] = "ann"
		require.NoError(t, store.Save(ctx, rec))

		again, err := store.FetchOrCreate(ctx, rec.ID, now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, rec.ID, again.ID)
		assert.Equal(t, "ann", again.Data["user"])
		assert.Equal(t, now.Add(time.Minute), again.LastAccessed)
	})

	t.Run("expired records are replaced", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(time.Hour)
		rec, err := store.FetchOrCreate(ctx, "", now)
		require.NoError(t, err)

		fresh, err := store.FetchOrCreate(ctx, rec.ID, now.Add(2*time.Hour))
		require.NoError(t, err)
		assert.NotEqual(t, rec.ID, fresh.ID)

		assert.Equal(t, 1, store.Sweep(now.Add(2*time.Hour)))
		_, ok := store.Get(rec.ID)
		assert.False(t, ok)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		store := session.NewMemoryStore(0)
		_, err := store.FetchOrCreate(cctx, "", now)
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, store.Save(cctx, session.NewRecord(now)), context.Canceled)
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		rec, err := store.FetchOrCreate(ctx, "", now)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				r, err := store.FetchOrCreate(ctx, rec.ID, now)
				assert.NoError(t, err)
				r.Data["n"] = i
				assert.NoError(t, store.Save(ctx, r))
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, store.Len())
	})
}
