package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "REST_PORT", "SERVER_TYPE", "REDIS_URL", "REDIS_PASSWORD",
		"MAX_SESSIONS", "SESSION_TIMEOUT", "ALLOWED_ORIGINS", "KEEPALIVE_PERIOD",
		"ORACLE_PROVIDER", "OPENAI_API_KEY", "GEMINI_API_KEY",
		"ORACLE_TIMEOUT", "ORACLE_THRESHOLD", "SINK_URL", "SINK_RETRIES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 8081, cfg.RestPort)
	assert.Equal(t, "websocket", cfg.ServerType)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, 100, cfg.MaxSessions)
	assert.Equal(t, 30*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, OracleNone, cfg.OracleProvider)
	assert.Equal(t, 2*time.Second, cfg.OracleTimeout)
	assert.Equal(t, 0.8, cfg.OracleThreshold)
	assert.Equal(t, 3, cfg.SinkRetries)
	assert.Empty(t, cfg.SinkURL)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SERVER_TYPE", "both")
	t.Setenv("MAX_SESSIONS", "5")
	t.Setenv("SESSION_TIMEOUT", "10")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ORACLE_TIMEOUT", "500")
	t.Setenv("ORACLE_THRESHOLD", "0.9")
	t.Setenv("SINK_URL", "https://logs.example/hook")
	t.Setenv("SINK_RETRIES", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "both", cfg.ServerType)
	assert.Equal(t, 5, cfg.MaxSessions)
	assert.Equal(t, 10*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 500*time.Millisecond, cfg.OracleTimeout)
	assert.Equal(t, 0.9, cfg.OracleThreshold)
	assert.Equal(t, "https://logs.example/hook", cfg.SinkURL)
	assert.Equal(t, 5, cfg.SinkRetries)
}

func TestLoadConfigOracleProviderNeedsKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("ORACLE_PROVIDER", "openai")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, OracleOpenAI, cfg.OracleProvider)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "not-a-number"},
		{"SERVER_TYPE", "grpc"},
		{"MAX_SESSIONS", "many"},
		{"ORACLE_PROVIDER", "bard"},
		{"ORACLE_THRESHOLD", "1.5"},
		{"SINK_RETRIES", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
