package config

import (
	"sync"
	"time"
)

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	CookieName string
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		v := Env()
		authConfig = &AuthConfig{
			JWTSecret:  v.GetString("JWT_SECRET"),
			TokenTTL:   v.GetDuration("JWT_TTL"),
			CookieName: v.GetString("AUTH_COOKIE_NAME"),
		}
	})
	return authConfig
}
