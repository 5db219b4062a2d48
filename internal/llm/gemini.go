package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiConfig configures the Gemini completion client.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:  apiKey,
		Model:   "gemini-2.5-flash",
		Timeout: 2 * time.Minute,
	}
}

// GeminiClient implements CompletionClient on Google's Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient creates a Gemini-backed completion client.
func NewGeminiClient(cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultGeminiConfig("").Model
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   model,
		timeout: cfg.Timeout,
	}, nil
}

// Complete sends one prompt and returns the full response text. The
// configured timeout bounds each request; a timeout surfaces as an ordinary
// error to the caller.
func (c *GeminiClient) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(temperature)),
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}
