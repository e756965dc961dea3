package llm

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/summarypro/summarybot/internal/repository"
)

// RecordingSummarizer wraps a Summarizer and keeps a copy of every
// request/response pair in the summary log. Recording is instrumentation,
// not correctness: a failed write is logged and the summary still flows
// through.
type RecordingSummarizer struct {
	inner  Summarizer
	log    repository.SummaryLogRepository
	logger *logrus.Logger
}

// NewRecordingSummarizer wraps inner with summary-log instrumentation.
func NewRecordingSummarizer(inner Summarizer, log repository.SummaryLogRepository, logger *logrus.Logger) *RecordingSummarizer {
	return &RecordingSummarizer{inner: inner, log: log, logger: logger}
}

// Summarize delegates to the wrapped summarizer and records the outcome.
func (r *RecordingSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	text, err := r.inner.Summarize(ctx, prompt)

	rec := repository.SummaryLogRecord{
		Prompt:    prompt,
		Response:  text,
		Succeeded: err == nil,
	}
	if err != nil {
		rec.Response = err.Error()
	}
	if recordErr := r.log.Record(ctx, rec); recordErr != nil {
		r.logger.WithError(recordErr).Warn("Failed to record summary log entry")
	}

	return text, err
}
