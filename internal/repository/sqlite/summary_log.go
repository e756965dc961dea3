package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/summarypro/summarybot/internal/repository"
)

// SummaryLogRepository implements repository.SummaryLogRepository using SQLite.
type SummaryLogRepository struct {
	db *sqlx.DB
}

// NewSummaryLogRepository creates a new SQLite summary log repository.
func NewSummaryLogRepository(db *sqlx.DB) repository.SummaryLogRepository {
	return &SummaryLogRepository{db: db}
}

// Record stores one model round-trip.
func (r *SummaryLogRepository) Record(ctx context.Context, rec repository.SummaryLogRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO summary_log (id, prompt, response, succeeded, created_at)
		VALUES (:id, :prompt, :response, :succeeded, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, rec)
	return err
}

// ListRecent retrieves the most recent n records, newest first.
func (r *SummaryLogRepository) ListRecent(ctx context.Context, n int) ([]repository.SummaryLogRecord, error) {
	records := []repository.SummaryLogRecord{}
	query := `
		SELECT id, prompt, response, succeeded, created_at
		FROM summary_log
		ORDER BY created_at DESC
		LIMIT ?
	`

	if err := r.db.SelectContext(ctx, &records, query, n); err != nil {
		return nil, err
	}

	return records, nil
}
