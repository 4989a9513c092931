// Package gemini generates responses through the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/genai"

	"docchat/internal/generation"
)

// Config configures the Gemini generator.
type Config struct {
	APIKey string
	Model  string
}

// Generator calls Gemini's content generation endpoints.
type Generator struct {
	client *genai.Client
	model  string
}

// New creates a Gemini generator. The API key is required.
func New(ctx context.Context, cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini generator: missing API key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generator: creating client: %w", err)
	}
	return &Generator{client: client, model: cfg.Model}, nil
}

func (g *Generator) Name() string { return "gemini" }

// Generate returns the whole response at once.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generator: %w", err)
	}
	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", errors.New("gemini generator: empty response")
	}
	return text, nil
}

// Stream yields response fragments as the model produces them. An upstream
// error terminates the sequence after being yielded once.
func (g *Generator) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, genai.Text(prompt), nil) {
			if err != nil {
				yield("", fmt.Errorf("gemini generator: %w", err))
				return
			}
			if text := responseText(resp); text != "" {
				if !yield(text, nil) {
					return
				}
			}
		}
	}
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

var _ generation.Generator = (*Generator)(nil)
