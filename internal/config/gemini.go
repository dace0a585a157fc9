package config

import (
	"sync"
)

// GeminiConfig drives summaries and embeddings when INSIGHTS_PROVIDER=gemini.
type GeminiConfig struct {
	APIKey string
	// Model generates summaries. Embeddings always use EmbeddingModel.
	Model          string
	EmbeddingModel string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		v := Env()
		geminiConfig = &GeminiConfig{
			APIKey:         v.GetString("GEMINI_API_KEY"),
			Model:          v.GetString("GEMINI_MODEL"),
			EmbeddingModel: v.GetString("GEMINI_EMBEDDING_MODEL"),
		}
	})
	return geminiConfig
}
