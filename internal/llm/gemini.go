package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// GeminiClient implements Summarizer against the Gemini API.
type GeminiClient struct {
	client *genai.Client
	config GenerationConfig
	logger *logrus.Logger
}

// NewGeminiClient creates a Gemini summarization client.
func NewGeminiClient(ctx context.Context, apiKey string, config GenerationConfig, logger *logrus.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: config, logger: logger}, nil
}

// Summarize sends the prompt with the fixed generation configuration and
// returns the plain-text response. An empty candidate maps to
// ErrEmptyResponse.
func (c *GeminiClient) Summarize(ctx context.Context, prompt string) (string, error) {
	generation := &genai.GenerateContentConfig{
		CandidateCount:   1,
		MaxOutputTokens:  c.config.MaxOutputTokens,
		Temperature:      genai.Ptr(c.config.Temperature),
		TopP:             genai.Ptr(c.config.TopP),
		TopK:             genai.Ptr(float32(c.config.TopK)),
		PresencePenalty:  genai.Ptr(c.config.PresencePenalty),
		FrequencyPenalty: genai.Ptr(c.config.FrequencyPenalty),
		StopSequences:    c.config.StopSequences,
		ResponseMIMEType: "text/plain",
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(prompt), generation)
	if err != nil {
		c.logger.WithError(err).Error("Gemini request failed")
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		c.logger.Warn("Gemini returned an empty response")
		return "", ErrEmptyResponse
	}

	return text, nil
}
