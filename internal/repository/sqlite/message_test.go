package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/summarypro/summarybot/internal/repository"
)

const summaryThreadID = 20284

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			message_id INTEGER NOT NULL,
			date TEXT NOT NULL,
			username TEXT NOT NULL,
			message_content TEXT NOT NULL,
			thread_id INTEGER
		);
		CREATE TABLE summary_log (
			id TEXT PRIMARY KEY,
			prompt TEXT NOT NULL,
			response TEXT NOT NULL,
			succeeded BOOLEAN NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		);
	`)
	require.NoError(t, err)
	return db
}

func stored(messageID int64, thread int64, user, date, text string) repository.StoredMessage {
	m := repository.StoredMessage{
		MessageID: messageID,
		Date:      date,
		Username:  user,
		Content:   text,
	}
	if thread >= 0 {
		m.ThreadID = sql.NullInt64{Int64: thread, Valid: true}
	}
	return m
}

func TestInsertAndFetchRecent(t *testing.T) {
	repo := NewMessageRepository(testDB(t), summaryThreadID)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, stored(1, 10, "a", "2024-10-01T10:00:00Z", "first")))
	require.NoError(t, repo.Insert(ctx, stored(2, -1, "b", "2024-10-01T11:00:00Z", "second")))
	require.NoError(t, repo.Insert(ctx, stored(3, 10, "c", "2024-10-01T12:00:00Z", "third")))

	got, err := repo.FetchRecent(ctx, 2)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "third", got[0].Content)
	assert.Equal(t, "second", got[1].Content)
	assert.False(t, got[1].ThreadID.Valid)
}

func TestFetchRecentIncludesSummaryThread(t *testing.T) {
	repo := NewMessageRepository(testDB(t), summaryThreadID)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, stored(1, summaryThreadID, "bot", "2024-10-01T10:00:00Z", "summary post")))

	got, err := repo.FetchRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFetchByRangeExcludesSummaryThread(t *testing.T) {
	repo := NewMessageRepository(testDB(t), summaryThreadID)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, stored(1, 10, "a", "2024-10-01T10:00:00Z", "keep topic")))
	require.NoError(t, repo.Insert(ctx, stored(2, -1, "b", "2024-10-01T10:30:00Z", "keep general")))
	require.NoError(t, repo.Insert(ctx, stored(3, summaryThreadID, "bot", "2024-10-01T11:00:00Z", "drop summary")))

	start := time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

	got, err := repo.FetchByRange(ctx, start, end)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "keep general", got[0].Content)
	assert.Equal(t, "keep topic", got[1].Content)
}

func TestFetchByRangeBoundsInclusive(t *testing.T) {
	repo := NewMessageRepository(testDB(t), summaryThreadID)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, stored(1, 10, "a", "2024-10-01T10:00:00Z", "at start")))
	require.NoError(t, repo.Insert(ctx, stored(2, 10, "b", "2024-10-01T12:00:00Z", "at end")))
	require.NoError(t, repo.Insert(ctx, stored(3, 10, "c", "2024-10-01T12:00:01Z", "after end")))

	start := time.Date(2024, 10, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

	got, err := repo.FetchByRange(ctx, start, end)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "at end", got[0].Content)
	assert.Equal(t, "at start", got[1].Content)
}

func TestSummaryLogRoundTrip(t *testing.T) {
	repo := NewSummaryLogRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, repository.SummaryLogRecord{
		Prompt:    "p1",
		Response:  "r1",
		Succeeded: true,
	}))
	require.NoError(t, repo.Record(ctx, repository.SummaryLogRecord{
		Prompt:    "p2",
		Response:  "boom",
		Succeeded: false,
		CreatedAt: time.Now().Add(time.Minute).UTC(),
	}))

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].Prompt)
	assert.False(t, got[0].Succeeded)
	assert.NotEmpty(t, got[1].ID)
	assert.True(t, got[1].Succeeded)
}
