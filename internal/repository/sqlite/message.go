package sqlite

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/summarypro/summarybot/internal/repository"
)

// MessageRepository implements repository.MessageRepository using SQLite.
type MessageRepository struct {
	db              *sqlx.DB
	summaryThreadID int64
}

// NewMessageRepository creates a new SQLite message repository.
// summaryThreadID is the forum topic the bot posts summaries into; range
// fetches exclude it.
func NewMessageRepository(db *sqlx.DB, summaryThreadID int64) repository.MessageRepository {
	return &MessageRepository{db: db, summaryThreadID: summaryThreadID}
}

// Insert stores one archived message.
func (r *MessageRepository) Insert(ctx context.Context, msg repository.StoredMessage) error {
	query := `
		INSERT INTO messages (message_id, date, username, message_content, thread_id)
		VALUES (:message_id, :date, :username, :message_content, :thread_id)
	`

	_, err := r.db.NamedExecContext(ctx, query, msg)
	return err
}

// FetchRecent retrieves the most recent n messages, newest first.
func (r *MessageRepository) FetchRecent(ctx context.Context, n int) ([]repository.StoredMessage, error) {
	messages := []repository.StoredMessage{}
	query := `
		SELECT id, message_id, date, username, message_content, thread_id
		FROM messages
		ORDER BY date DESC
		LIMIT ?
	`

	if err := r.db.SelectContext(ctx, &messages, query, n); err != nil {
		return nil, err
	}

	return messages, nil
}

// FetchByRange retrieves messages with start <= date <= end, newest first,
// skipping the summary-output thread.
func (r *MessageRepository) FetchByRange(ctx context.Context, start, end time.Time) ([]repository.StoredMessage, error) {
	messages := []repository.StoredMessage{}
	query := `
		SELECT id, message_id, date, username, message_content, thread_id
		FROM messages
		WHERE date BETWEEN ? AND ?
		AND (thread_id IS NULL OR thread_id != ?)
		ORDER BY date DESC
	`

	err := r.db.SelectContext(ctx, &messages, query,
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339), r.summaryThreadID)
	if err != nil {
		return nil, err
	}

	return messages, nil
}
