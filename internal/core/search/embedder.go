package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
)

// OllamaEmbedder Ollama の埋め込み API クライアント
type OllamaEmbedder struct {
	client *api.Client
	model  string
}

// NewOllamaEmbedder Ollama クライアントを作成する
func NewOllamaEmbedder(host, model string, timeout time.Duration) (*OllamaEmbedder, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host URL: %w", err)
	}

	httpClient := &http.Client{
		Timeout: timeout,
	}

	return &OllamaEmbedder{
		client: api.NewClient(u, httpClient),
		model:  model,
	}, nil
}

// Embed テキストを埋め込みベクトルに変換する
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	req := &api.EmbeddingRequest{
		Model:  e.model,
		Prompt: text,
	}

	resp, err := e.client.Embeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	vector := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}
