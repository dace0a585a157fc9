package config

import (
	"strings"
	"sync"
)

const (
	InsightsGemini     = "gemini"
	InsightsOpenRouter = "openrouter"
)

// InsightsConfig selects the optional AI summary provider. An empty
// Provider disables insights entirely.
type InsightsConfig struct {
	Provider string
}

func (c *InsightsConfig) Enabled() bool {
	return c.Provider != ""
}

var (
	insightsConfig *InsightsConfig
	insightsOnce   sync.Once
)

func LoadInsightsConfig() *InsightsConfig {
	insightsOnce.Do(func() {
		insightsConfig = &InsightsConfig{
			Provider: strings.ToLower(strings.TrimSpace(Env().GetString("INSIGHTS_PROVIDER"))),
		}
	})
	return insightsConfig
}
