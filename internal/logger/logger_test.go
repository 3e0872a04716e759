package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLevel(""))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("loud"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "info", "json")

	l.Debug().Msg("hidden")
	l.Info().Str("endpoint", "search").Msg("call")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "call", entry["message"])
	assert.Equal(t, "search", entry["endpoint"])
	assert.Equal(t, "linkup-cli", entry["service"])
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "debug", "console")
	l.Debug().Msg("retrying request")
	assert.Contains(t, buf.String(), "retrying request")
}
