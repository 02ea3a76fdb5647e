package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "production", "debug")
	l.Info().Str("user", "alice").Msg("login succeeded")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "login succeeded", entry["message"])
	assert.Equal(t, "alice", entry["user"])
	assert.Equal(t, "cublex", entry["service"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "production", "warn")
	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "production", "loud")
	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
	l.Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_DevelopmentUsesConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "development", "info")
	l.Info().Msg("server starting")
	assert.Contains(t, buf.String(), "server starting")
	assert.NotContains(t, buf.String(), `"message"`)
}
