package summary

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/summarypro/summarybot/internal/repository"
	"github.com/summarypro/summarybot/internal/threads"
)

type fakeMessageRepo struct {
	recent  []repository.StoredMessage
	ranged  []repository.StoredMessage
	lastN   int
	lastEnd time.Time
	err     error
}

func (f *fakeMessageRepo) Insert(ctx context.Context, msg repository.StoredMessage) error {
	return nil
}

func (f *fakeMessageRepo) FetchRecent(ctx context.Context, n int) ([]repository.StoredMessage, error) {
	f.lastN = n
	return f.recent, f.err
}

func (f *fakeMessageRepo) FetchByRange(ctx context.Context, start, end time.Time) ([]repository.StoredMessage, error) {
	f.lastEnd = end
	return f.ranged, f.err
}

type fakeSummarizer struct {
	gotPrompt string
	response  string
	err       error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	return f.response, f.err
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func serviceUnderTest(repo *fakeMessageRepo, model *fakeSummarizer) *Service {
	dir := threads.NewDirectory(map[int64]string{1: "🚀 Паша-бот"}, "☕️ Женераль")
	return NewService(repo, model, dir, quietLogger())
}

func TestSummarizeRecentEmptyArchive(t *testing.T) {
	svc := serviceUnderTest(&fakeMessageRepo{}, &fakeSummarizer{})

	_, err := svc.SummarizeRecent(context.Background(), 100)
	assert.ErrorIs(t, err, ErrNoMessages)
}

func TestSummarizeRecentReconcilesModelOutput(t *testing.T) {
	repo := &fakeMessageRepo{recent: []repository.StoredMessage{
		{
			Username: "alice",
			Date:     "2024-10-01T10:00:00Z",
			Content:  "привет",
			ThreadID: sql.NullInt64{Int64: 1, Valid: true},
		},
	}}
	model := &fakeSummarizer{response: "Thread 1:\n• Обсудили релиз.\n"}
	svc := serviceUnderTest(repo, model)

	got, err := svc.SummarizeRecent(context.Background(), 50)
	require.NoError(t, err)

	assert.Equal(t, 50, repo.lastN)
	assert.Equal(t, "🚀 Паша-бот:\n• Обсудили релиз.\n", got)
}

func TestSummarizePromptCarriesRawThreadIds(t *testing.T) {
	// Display names stay out of the prompt; reconciliation happens on
	// the model output only.
	repo := &fakeMessageRepo{recent: []repository.StoredMessage{
		{
			Username: "alice",
			Date:     "2024-10-01T10:00:00Z",
			Content:  "привет",
			ThreadID: sql.NullInt64{Int64: 1, Valid: true},
		},
	}}
	model := &fakeSummarizer{response: "ok"}
	svc := serviceUnderTest(repo, model)

	_, err := svc.SummarizeRecent(context.Background(), 10)
	require.NoError(t, err)

	assert.Contains(t, model.gotPrompt, "Thread 1\n  - alice: привет\n")
	assert.NotContains(t, model.gotPrompt, "🚀 Паша-бот")
	assert.Contains(t, model.gotPrompt, "Conversations:\n\n")
}

func TestSummarizeRangePropagatesModelError(t *testing.T) {
	repo := &fakeMessageRepo{ranged: []repository.StoredMessage{
		{Username: "bob", Date: "2024-10-01T10:00:00Z", Content: "hi"},
	}}
	modelErr := errors.New("service unavailable")
	svc := serviceUnderTest(repo, &fakeSummarizer{err: modelErr})

	_, err := svc.SummarizeRange(context.Background(), time.Now().Add(-time.Hour), time.Now())
	assert.ErrorIs(t, err, modelErr)
}

func TestSummarizeRecentAggregationFailureIsFatal(t *testing.T) {
	repo := &fakeMessageRepo{recent: []repository.StoredMessage{
		{Username: "bob", Date: "garbage", Content: "hi"},
	}}
	model := &fakeSummarizer{response: "should not be called"}
	svc := serviceUnderTest(repo, model)

	_, err := svc.SummarizeRecent(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to aggregate")
	assert.Empty(t, model.gotPrompt)
}
