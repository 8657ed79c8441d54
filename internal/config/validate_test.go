package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-simacov/synncore/internal/config"
	"github.com/a-simacov/synncore/internal/errors"
)

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, config.Validate(config.DefaultConfig()))
}

func TestValidate_NilConfig(t *testing.T) {
	err := config.Validate(nil)
	assert.ErrorIs(t, err, errors.ErrConfigNil)
}

func TestValidate_Buffer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Buffer.Capacity = 0

	err := config.Validate(cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigInvalidBuffer)
}

func TestValidate_Search(t *testing.T) {
	t.Run("unknown failure mode", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Search.RemoteFailureMode = "retry"

		err := config.Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrConfigInvalidSearch)
	})

	t.Run("fail mode is accepted", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Search.RemoteFailureMode = "fail"

		assert.NoError(t, config.Validate(cfg))
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Search.RemoteTimeout = 0

		err := config.Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrConfigInvalidSearch)
	})
}

func TestValidate_Logging(t *testing.T) {
	t.Run("unknown level", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Logging.Level = "loud"

		err := config.Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrConfigInvalidLogging)
	})

	t.Run("rotation settings only checked with a file", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Logging.MaxSizeMB = 0

		// No file configured: rotation values are irrelevant.
		assert.NoError(t, config.Validate(cfg))

		cfg.Logging.File = "synncore.log"
		err := config.Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrConfigInvalidLogging)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, 20, cfg.Buffer.Capacity)
	assert.Equal(t, "ignore", cfg.Search.RemoteFailureMode)
	assert.Equal(t, 10*time.Second, cfg.Search.RemoteTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Storage.DBPath)
}
