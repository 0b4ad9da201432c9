package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/yarf/core/config"
)

type testConfig struct {
	Name    string        `env:"YARF_TEST_NAME" envDefault:"yarf"`
	Timeout time.Duration `env:"YARF_TEST_TIMEOUT" envDefault:"5s"`
	Count   int           `env:"YARF_TEST_COUNT" envDefault:"3"`
}

type requiredConfig struct {
	Secret string `env:"YARF_TEST_REQUIRED_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		config.Reset()

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "yarf", cfg.Name)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 3, cfg.Count)
	})

	t.Run("reads environment", func(t *testing.T) {
		config.Reset()
		t.Setenv("YARF_TEST_NAME", "custom")
		t.Setenv("YARF_TEST_COUNT", "7")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "custom", cfg.Name)
		assert.Equal(t, 7, cfg.Count)
	})

	t.Run("caches per type", func(t *testing.T) {
		config.Reset()
		t.Setenv("YARF_TEST_NAME", "first")

		var first testConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("YARF_TEST_NAME", "second")

		var second testConfig
		require.NoError(t, config.Load(&second))

		assert.Equal(t, "first", second.Name)
	})

	t.Run("fails on missing required value", func(t *testing.T) {
		config.Reset()

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
	})

	t.Run("rejects nil target", func(t *testing.T) {
		var cfg *testConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilTarget)
	})
}

func TestMustLoad(t *testing.T) {
	config.Reset()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
