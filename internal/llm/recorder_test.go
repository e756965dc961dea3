package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/summarypro/summarybot/internal/repository"
)

type stubSummarizer struct {
	response string
	err      error
}

func (s *stubSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

type memorySummaryLog struct {
	records []repository.SummaryLogRecord
	err     error
}

func (m *memorySummaryLog) Record(ctx context.Context, rec repository.SummaryLogRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memorySummaryLog) ListRecent(ctx context.Context, n int) ([]repository.SummaryLogRecord, error) {
	return m.records, nil
}

func TestRecordingSummarizerRecordsSuccess(t *testing.T) {
	log := &memorySummaryLog{}
	rec := NewRecordingSummarizer(&stubSummarizer{response: "итог"}, log, quietLogger())

	got, err := rec.Summarize(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "итог", got)

	require.Len(t, log.records, 1)
	assert.Equal(t, "prompt", log.records[0].Prompt)
	assert.Equal(t, "итог", log.records[0].Response)
	assert.True(t, log.records[0].Succeeded)
}

func TestRecordingSummarizerRecordsFailure(t *testing.T) {
	log := &memorySummaryLog{}
	modelErr := errors.New("timeout")
	rec := NewRecordingSummarizer(&stubSummarizer{err: modelErr}, log, quietLogger())

	_, err := rec.Summarize(context.Background(), "prompt")
	assert.ErrorIs(t, err, modelErr)

	require.Len(t, log.records, 1)
	assert.False(t, log.records[0].Succeeded)
	assert.Equal(t, "timeout", log.records[0].Response)
}

func TestRecordingSummarizerLogWriteIsBestEffort(t *testing.T) {
	log := &memorySummaryLog{err: errors.New("disk full")}
	rec := NewRecordingSummarizer(&stubSummarizer{response: "итог"}, log, quietLogger())

	got, err := rec.Summarize(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "итог", got)
}
