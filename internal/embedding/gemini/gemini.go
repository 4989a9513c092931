// Package gemini embeds text through the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"docchat/internal/embedding"
)

// Config configures the Gemini embedder.
type Config struct {
	APIKey string
	Model  string
	// Dimension is the expected vector dimensionality; callers use it to
	// build zero-vector fallbacks when a call fails.
	Dimension int
}

// Embedder calls Gemini's EmbedContent endpoint.
type Embedder struct {
	client    *genai.Client
	model     string
	dimension int
}

// New creates a Gemini embedder. The API key is required.
func New(ctx context.Context, cfg Config) (*Embedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini embedder: missing API key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini embedder: creating client: %w", err)
	}
	return &Embedder{client: client, model: cfg.Model, dimension: cfg.Dimension}, nil
}

func (e *Embedder) Name() string { return "gemini" }

func (e *Embedder) Dimension() int { return e.dimension }

// Embed requests a single embedding. The purpose maps onto Gemini task
// types so document and query vectors land in compatible subspaces.
func (e *Embedder) Embed(ctx context.Context, text string, purpose embedding.Purpose) ([]float64, error) {
	taskType := "RETRIEVAL_DOCUMENT"
	if purpose == embedding.PurposeQuery {
		taskType = "RETRIEVAL_QUERY"
	}
	resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), &genai.EmbedContentConfig{
		TaskType: taskType,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini embedder: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini embedder: empty embedding in response")
	}
	values := resp.Embeddings[0].Values
	vec := make([]float64, len(values))
	for i, v := range values {
		vec[i] = float64(v)
	}
	return vec, nil
}

var _ embedding.Embedder = (*Embedder)(nil)
