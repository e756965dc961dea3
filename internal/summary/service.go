package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/summarypro/summarybot/internal/repository"
	"github.com/summarypro/summarybot/internal/threads"
)

// ErrNoMessages is returned when the requested window or count contains
// nothing to summarize. It is a normal outcome, not a failure.
var ErrNoMessages = errors.New("no messages to summarize")

// Summarizer produces a summary for a fully built prompt. Implementations
// live in internal/llm.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Service runs the summarization pipeline: fetch, aggregate, prompt, model
// call, name reconciliation. It holds no mutable state, so one instance
// serves concurrent scheduled and interactive requests.
type Service struct {
	messages  repository.MessageRepository
	model     Summarizer
	directory *threads.Directory
	logger    *logrus.Logger
}

// NewService creates a summary service.
func NewService(messages repository.MessageRepository, model Summarizer, directory *threads.Directory, logger *logrus.Logger) *Service {
	return &Service{
		messages:  messages,
		model:     model,
		directory: directory,
		logger:    logger,
	}
}

// SummarizeRecent summarizes the most recent n archived messages.
func (s *Service) SummarizeRecent(ctx context.Context, n int) (string, error) {
	messages, err := s.messages.FetchRecent(ctx, n)
	if err != nil {
		return "", fmt.Errorf("failed to fetch recent messages: %w", err)
	}
	return s.run(ctx, messages)
}

// SummarizeRange summarizes archived messages with start <= date <= end.
// The summary-output thread is excluded by the repository.
func (s *Service) SummarizeRange(ctx context.Context, start, end time.Time) (string, error) {
	messages, err := s.messages.FetchByRange(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("failed to fetch messages in range: %w", err)
	}
	return s.run(ctx, messages)
}

// run executes the four pipeline stages over an already fetched batch.
// Raw thread ids go to the model; display names are substituted once, on
// the model output, so non-ASCII thread names never sit inside the prompt.
func (s *Service) run(ctx context.Context, messages []repository.StoredMessage) (string, error) {
	if len(messages) == 0 {
		return "", ErrNoMessages
	}

	block, err := Aggregate(messages)
	if err != nil {
		return "", fmt.Errorf("failed to aggregate messages: %w", err)
	}

	prompt := BuildPrompt(block)
	s.logger.WithField("messages", len(messages)).Debug("Built summarization prompt")

	raw, err := s.model.Summarize(ctx, prompt)
	if err != nil {
		return "", err
	}

	return s.directory.Reconcile(raw), nil
}
