package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/fadilmartias/project-review/internal/config"
)

const openRouterURL = "https://openrouter.ai/api/v1"

// OpenRouterService summarizes project text through OpenRouter's chat
// completions API. It has no embedding endpoint.
type OpenRouterService struct {
	client *resty.Client
	model  string
	log    *zap.Logger
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, log *zap.Logger) (*OpenRouterService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openRouterURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(90 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429 || r.StatusCode() >= 500
		})
	return &OpenRouterService{client: client, model: cfg.Model, log: log}, nil
}

func (s *OpenRouterService) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("text cannot be empty")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model":       s.model,
			"temperature": 0.1,
			"messages": []map[string]string{
				{"role": "system", "content": "You write short neutral summaries of software projects."},
				{"role": "user", "content": summaryPrompt(text)},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}
	if resp.IsError() {
		msg := gjson.GetBytes(resp.Body(), "error.message").String()
		return "", fmt.Errorf("openrouter status %d: %s", resp.StatusCode(), msg)
	}

	content := gjson.GetBytes(resp.Body(), "choices.0.message.content").String()
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	s.log.Debug("openrouter summary",
		zap.String("model", gjson.GetBytes(resp.Body(), "model").String()),
		zap.Int64("tokens", gjson.GetBytes(resp.Body(), "usage.total_tokens").Int()),
	)
	return strings.TrimSpace(content), nil
}
