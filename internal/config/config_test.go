package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SURREAL_URL", "ws://localhost:8000/rpc")
	t.Setenv("SURREAL_NS", "test")
	t.Setenv("SURREAL_DB", "test")
	t.Setenv("SESSION_SECRET", "a-very-secret-key-for-testing-!")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("EMAIL_PROVIDER", "")
	t.Setenv("DB_QUERY_TIMEOUT", "")
	t.Setenv("APP_BASE_URL", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Equal(t, "log", cfg.GetEmailProvider())
	assert.Equal(t, 5*time.Second, cfg.GetDBQueryTimeout())
	assert.Equal(t, 10*time.Second, cfg.GetDBExecuteTimeout())
	assert.Equal(t, "http://localhost:8080", cfg.GetAppBaseURL())
	assert.Equal(t, 587, cfg.GetSMTPPort())
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_BASE_URL", "https://admin.example.com/")
	t.Setenv("DB_QUERY_TIMEOUT", "250ms")
	t.Setenv("DB_EXECUTE_TIMEOUT", "not-a-duration")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://admin.example.com", cfg.GetAppBaseURL(), "trailing slash is trimmed")
	assert.Equal(t, 250*time.Millisecond, cfg.GetDBQueryTimeout())
	assert.Equal(t, 10*time.Second, cfg.GetDBExecuteTimeout(), "invalid duration falls back to default")
	assert.Equal(t, 2525, cfg.GetSMTPPort())
}

func TestFromEnv_MissingRequired(t *testing.T) {
	t.Setenv("SURREAL_URL", "")
	t.Setenv("SURREAL_NS", "ns")
	t.Setenv("SURREAL_DB", "")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := FromEnv()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "SURREAL_URL")
	assert.Contains(t, err.Error(), "SURREAL_DB")
	assert.Contains(t, err.Error(), "SESSION_SECRET")
	assert.NotContains(t, err.Error(), "SURREAL_NS")
}
