package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// OpenAIClient implements Summarizer against OpenAI or any
// OpenAI-compatible endpoint.
type OpenAIClient struct {
	client *openai.Client
	config GenerationConfig
	logger *logrus.Logger
}

// NewOpenAIClient creates an OpenAI summarization client. baseURL is
// optional and points the client at a compatible endpoint.
func NewOpenAIClient(apiKey, baseURL string, config GenerationConfig, logger *logrus.Logger) *OpenAIClient {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		logger: logger,
	}
}

// Summarize sends the prompt as a single user message. Top-k sampling has
// no chat-completions equivalent and is dropped; the remaining knobs map
// one to one.
func (c *OpenAIClient) Summarize(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		N:                1,
		MaxTokens:        int(c.config.MaxOutputTokens),
		Temperature:      c.config.Temperature,
		TopP:             c.config.TopP,
		PresencePenalty:  c.config.PresencePenalty,
		FrequencyPenalty: c.config.FrequencyPenalty,
		Stop:             c.config.StopSequences,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.WithError(err).Error("OpenAI request failed")
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		c.logger.Warn("OpenAI returned an empty response")
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}
