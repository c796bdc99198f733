package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://localhost:5000/api/v1", cfg.APIURL)
	assert.Equal(t, "127.0.0.1:3000", cfg.HTTPAddr)
	assert.Equal(t, 60*time.Second, cfg.NotificationsPollInterval)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.False(t, cfg.OtelEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SAVEAT_API_URL", "https://api.saveat.mx/api/v1")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("NOTIFICATIONS_POLL_INTERVAL", "30s")
	t.Setenv("ENV", "production")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://api.saveat.mx/api/v1", cfg.API().BaseURL)
	assert.Equal(t, "redis:6380", cfg.Redis().Addr)
	assert.Equal(t, 2, cfg.Redis().DB)
	assert.Equal(t, 30*time.Second, cfg.NotificationsPollInterval)
	assert.Equal(t, "production", cfg.Logger().Env)
	assert.Equal(t, "saveat-admin", cfg.Otel().ServiceName)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"SAVEAT_API_URL":              "not a url",
		"ENV":                         "staging",
		"LOG_LEVEL":                   "verbose",
		"REDIS_DB":                    "99",
		"OTEL_SAMPLE_RATE":            "1.5",
		"NOTIFICATIONS_POLL_INTERVAL": "10ms",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)

			cfg, err := Load()

			assert.Nil(t, cfg)
			assert.Error(t, err)
		})
	}
}

func TestLoad_Unparseable(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")

	_, err := Load()

	assert.ErrorContains(t, err, "parse config")
}
