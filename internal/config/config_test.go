package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LINKUP_API_KEY", "k")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryMinWait)
	assert.Equal(t, 4*time.Second, cfg.RetryMaxWait)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LINKUP_API_KEY", "k")
	t.Setenv("LINKUP_BASE_URL", "http://localhost:9999/v1/")
	t.Setenv("LINKUP_TIMEOUT", "5s")
	t.Setenv("LINKUP_MAX_RETRIES", "0")
	t.Setenv("LINKUP_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/v1/", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Len(t, cfg.ClientOptions(zerolog.Nop()), 4)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("LINKUP_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{RetryMinWait: time.Second, RetryMaxWait: time.Second}
	assert.ErrorContains(t, cfg.Validate(), "LINKUP_API_KEY")

	cfg.APIKey = "k"
	cfg.RetryMaxWait = time.Millisecond
	assert.ErrorContains(t, cfg.Validate(), "LINKUP_RETRY_MAX_WAIT")
}
