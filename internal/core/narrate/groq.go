package narrate

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/infrastructure/config"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"
)

// Generator セリフ生成の下回り。テストでは偽物に差し替える
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// GroqClient Groq Chat Completions API クライアント
type GroqClient struct {
	config *config.Config
	client *resty.Client
}

// NewGroqClient Groq クライアントを作成する
func NewGroqClient(cfg *config.Config) *GroqClient {
	client := resty.New().
		SetBaseURL("https://api.groq.com/openai/v1").
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Groq.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Groq.Timeout)

	return &GroqClient{
		config: cfg,
		client: client,
	}
}

// Generate プロンプト 1 本を投げて本文を返す
func (c *GroqClient) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if !c.config.Groq.Enabled {
		return "", fmt.Errorf("groq is disabled")
	}
	if maxTokens <= 0 {
		maxTokens = c.config.Groq.MaxTokens
	}

	req := map[string]interface{}{
		"model": c.config.Groq.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("failed to send request to Groq: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("Groq API returned error: %s", resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse Groq response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in Groq response")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
