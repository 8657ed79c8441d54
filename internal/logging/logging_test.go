package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-simacov/synncore/internal/errors"
	"github.com/a-simacov/synncore/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.name, func(t *testing.T) {
			level, err := logging.ParseLevel(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestParseLevelUnknown(t *testing.T) {
	_, err := logging.ParseLevel("loud")

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigInvalidLogging)
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer

	logger, err := logging.NewWithWriter("warn", &buf)
	require.NoError(t, err)

	logger.Info().Msg("filtered out")
	logger.Warn().Msg("kept")

	output := buf.String()
	assert.NotContains(t, output, "filtered out")
	assert.Contains(t, output, "kept")
}

func TestNewWithWriterUnknownLevel(t *testing.T) {
	var buf bytes.Buffer

	_, err := logging.NewWithWriter("loud", &buf)

	require.Error(t, err)
}
