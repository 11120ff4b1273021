package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/healthai?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.AI.BaseURL)
	assert.Equal(t, "x-ai/grok-beta", cfg.AI.Model)
	assert.Equal(t, 3, cfg.AI.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.AI.RetryDelay)
	assert.InDelta(t, 0.7, cfg.AI.Temperature, 0.001)
	assert.Equal(t, 1500, cfg.AI.ChatMaxTokens)
	assert.Equal(t, 2000, cfg.AI.SymptomMaxTokens)
	assert.Equal(t, 2500, cfg.AI.TreatmentMaxTokens)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/healthai")
	t.Setenv("PORT", "9090")
	t.Setenv("AI_BASE_URL", "https://api.openai.com/v1")
	t.Setenv("AI_MODEL", "gpt-4o-mini")
	t.Setenv("AI_MAX_RETRIES", "5")
	t.Setenv("AI_RETRY_DELAY_SECONDS", "1")
	t.Setenv("AI_CHAT_MAX_TOKENS", "800")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://api.openai.com/v1", cfg.AI.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, 5, cfg.AI.MaxRetries)
	assert.Equal(t, time.Second, cfg.AI.RetryDelay)
	assert.Equal(t, 800, cfg.AI.ChatMaxTokens)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_RejectsZeroRetries(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/healthai")
	t.Setenv("AI_MAX_RETRIES", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_MAX_RETRIES")
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/healthai")
	t.Setenv("AI_MAX_RETRIES", "not-a-number")
	t.Setenv("AI_TEMPERATURE", "warm")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.AI.MaxRetries)
	assert.InDelta(t, 0.7, cfg.AI.Temperature, 0.001)
}
