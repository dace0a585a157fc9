package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnv_Defaults(t *testing.T) {
	v := Env()
	assert.Equal(t, "postgres", v.GetString("DB_DRIVER"))
	assert.Equal(t, 24*time.Hour, v.GetDuration("JWT_TTL"))
	assert.Equal(t, int64(5<<20), v.GetInt64("UPLOAD_MAX_BYTES"))
}

func TestEnv_ReadsEnvironment(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("JWT_TTL", "90m")

	v := Env()
	assert.Equal(t, int64(1024), v.GetInt64("UPLOAD_MAX_BYTES"))
	assert.Equal(t, 90*time.Minute, v.GetDuration("JWT_TTL"))
}

func TestInsightsConfig_Enabled(t *testing.T) {
	assert.False(t, (&InsightsConfig{}).Enabled())
	assert.True(t, (&InsightsConfig{Provider: InsightsGemini}).Enabled())
}

func TestEnv_ProviderDefaults(t *testing.T) {
	v := Env()
	assert.Equal(t, "gemini-embedding-001", v.GetString("GEMINI_EMBEDDING_MODEL"))
	assert.Empty(t, v.GetString("OPENROUTER_BASE_URL"))
}
