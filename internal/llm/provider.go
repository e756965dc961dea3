package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrEmptyResponse is returned when the model call succeeds but yields no
// text. Callers distinguish it from transport failures with errors.Is; both
// are terminal for the call — no retry happens at this layer.
var ErrEmptyResponse = errors.New("empty response from model")

// Summarizer sends a prompt to a language model and returns the raw summary
// text. Implementations never panic across this boundary; every failure
// comes back as an error.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// GenerationConfig is the fixed generation setup shared by all providers:
// a single low-randomness candidate, bounded output, mild repetition
// penalties, and a stop sequence at thread boundaries.
type GenerationConfig struct {
	Model            string
	MaxOutputTokens  int32
	Temperature      float32
	TopP             float32
	TopK             int32
	PresencePenalty  float32
	FrequencyPenalty float32
	StopSequences    []string
}

// DefaultGenerationConfig returns the generation setup used in production.
func DefaultGenerationConfig(model string) GenerationConfig {
	return GenerationConfig{
		Model:            model,
		MaxOutputTokens:  3500,
		Temperature:      0.3,
		TopP:             0.9,
		TopK:             40,
		PresencePenalty:  0.3,
		FrequencyPenalty: 0.6,
		StopSequences:    []string{"\nThread"},
	}
}

// ProviderOptions selects and configures a summarization provider.
type ProviderOptions struct {
	Provider string // "gemini" or "openai"
	APIKey   string
	BaseURL  string // openai-compatible endpoints only
	Config   GenerationConfig
}

// NewSummarizer builds the configured provider.
func NewSummarizer(ctx context.Context, opts ProviderOptions, logger *logrus.Logger) (Summarizer, error) {
	switch opts.Provider {
	case "gemini":
		return NewGeminiClient(ctx, opts.APIKey, opts.Config, logger)
	case "openai":
		return NewOpenAIClient(opts.APIKey, opts.BaseURL, opts.Config, logger), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", opts.Provider)
	}
}
