package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// AIConfig holds the completion-service settings.  The client is
// OpenAI-compatible; BaseURL defaults to OpenRouter as in the hosted
// deployment and can be pointed at api.openai.com or a local gateway.
type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	Temperature float32

	// Token budgets per task, sized to expected response length.
	ChatMaxTokens      int
	SymptomMaxTokens   int
	TreatmentMaxTokens int
}

// Config is the full service configuration, loaded from the environment.
type Config struct {
	DatabaseURL string
	Port        string

	AI AIConfig

	Log struct {
		Level  string
		Format string
	}
}

// Load reads configuration from environment variables, applying defaults for
// everything except DATABASE_URL, which has no sensible default.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}
	cfg.Port = getEnv("PORT", "8080")

	cfg.AI.APIKey = os.Getenv("AI_API_KEY")
	cfg.AI.BaseURL = getEnv("AI_BASE_URL", "https://openrouter.ai/api/v1")
	cfg.AI.Model = getEnv("AI_MODEL", "x-ai/grok-beta")
	cfg.AI.MaxRetries = getEnvInt("AI_MAX_RETRIES", 3)
	cfg.AI.RetryDelay = time.Duration(getEnvInt("AI_RETRY_DELAY_SECONDS", 2)) * time.Second
	cfg.AI.Temperature = getEnvFloat("AI_TEMPERATURE", 0.7)
	cfg.AI.ChatMaxTokens = getEnvInt("AI_CHAT_MAX_TOKENS", 1500)
	cfg.AI.SymptomMaxTokens = getEnvInt("AI_SYMPTOM_MAX_TOKENS", 2000)
	cfg.AI.TreatmentMaxTokens = getEnvInt("AI_TREATMENT_MAX_TOKENS", 2500)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	if cfg.AI.MaxRetries < 1 {
		return nil, fmt.Errorf("AI_MAX_RETRIES must be at least 1")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float32) float32 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return fallback
}
