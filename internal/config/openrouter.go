package config

import (
	"sync"
)

// OpenRouterConfig drives summaries when INSIGHTS_PROVIDER=openrouter.
// OpenRouter has no embedding endpoint, so Similar stays off with it.
type OpenRouterConfig struct {
	APIKey string
	// Model is an OpenRouter model slug such as "openai/gpt-4o-mini".
	Model string
	// BaseURL overrides the API root; empty means the public endpoint.
	BaseURL string
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		v := Env()
		openRouterConfig = &OpenRouterConfig{
			APIKey:  v.GetString("OPENROUTER_API_KEY"),
			Model:   v.GetString("OPENROUTER_MODEL"),
			BaseURL: v.GetString("OPENROUTER_BASE_URL"),
		}
	})
	return openRouterConfig
}
