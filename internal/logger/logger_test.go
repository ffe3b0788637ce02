package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tributo/internal/config"
	"tributo/internal/logger"
)

func TestNew_JSONFormatCarriesServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(config.LogConfig{Level: "info", Format: "json", ServiceName: "tributo-test"}, &buf)

	log.Info().Str("rut", "76.123.456-7").Msg("f29.Pipeline: declaration parsed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tributo-test", entry["service"])
	assert.Equal(t, "76.123.456-7", entry["rut"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "f29.Pipeline: declaration parsed", entry["message"])
}

func TestNew_LevelFiltersLowerEvents(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARNING", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}
