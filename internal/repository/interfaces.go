package repository

import (
	"context"
	"database/sql"
	"time"
)

// StoredMessage is one archived group-chat message. ThreadID is NULL for
// messages sent outside any forum topic (the general bucket). Date is an
// RFC 3339 timestamp, which keeps lexicographic and chronological order
// identical for range queries. Messages are append-only: the bot never
// mutates them after ingestion.
type StoredMessage struct {
	ID        int64         `db:"id"`
	MessageID int64         `db:"message_id"`
	Date      string        `db:"date"`
	Username  string        `db:"username"`
	Content   string        `db:"message_content"`
	ThreadID  sql.NullInt64 `db:"thread_id"`
}

// SummaryLogRecord is one model round-trip kept for inspection: the prompt
// that was sent and the raw text (or failure) that came back.
type SummaryLogRecord struct {
	ID        string    `db:"id"`
	Prompt    string    `db:"prompt"`
	Response  string    `db:"response"`
	Succeeded bool      `db:"succeeded"`
	CreatedAt time.Time `db:"created_at"`
}

// MessageRepository defines message storage operations.
//
// FetchByRange excludes the summary-output thread so the bot never
// summarizes its own summaries. FetchRecent applies no thread exclusion.
// Both return messages newest-first.
type MessageRepository interface {
	Insert(ctx context.Context, msg StoredMessage) error
	FetchRecent(ctx context.Context, n int) ([]StoredMessage, error)
	FetchByRange(ctx context.Context, start, end time.Time) ([]StoredMessage, error)
}

// SummaryLogRepository defines summary instrumentation storage operations.
type SummaryLogRepository interface {
	Record(ctx context.Context, rec SummaryLogRecord) error
	ListRecent(ctx context.Context, n int) ([]SummaryLogRecord, error)
}
