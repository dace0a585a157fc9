package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	env     *viper.Viper
	envOnce sync.Once
)

// Env returns the process-wide viper instance reading environment variables.
// .env files are loaded into the environment by main before the first call.
func Env() *viper.Viper {
	envOnce.Do(func() {
		v := viper.New()
		v.AutomaticEnv()

		v.SetDefault("APP_NAME", "project-review")
		v.SetDefault("APP_ENV", "development")
		v.SetDefault("APP_PORT", ":3000")
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "console")

		v.SetDefault("DB_DRIVER", "postgres")
		v.SetDefault("DB_HOST", "localhost")
		v.SetDefault("DB_PORT", "5432")
		v.SetDefault("DB_SSLMODE", "disable")

		v.SetDefault("JWT_TTL", 24*time.Hour)
		v.SetDefault("AUTH_COOKIE_NAME", "pr_token")

		v.SetDefault("REDIS_DB", 0)

		v.SetDefault("UPLOAD_DIR", "./uploads/projects")
		v.SetDefault("UPLOAD_MAX_BYTES", 5<<20)
		v.SetDefault("EXTRACT_MAX_BYTES", 10<<20)

		v.SetDefault("OPENROUTER_MODEL", "openai/gpt-4o-mini")
		v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
		v.SetDefault("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001")
		env = v
	})
	return env
}
