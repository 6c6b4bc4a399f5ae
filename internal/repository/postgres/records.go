package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quickcalc/ingest/internal/domain"
)

// RecordRepo implements ingest.Store against PostgreSQL. Every insert is a
// single statement, so a failed call leaves no partial row behind.
type RecordRepo struct{ db *sql.DB }

// NewRecordRepo creates a Postgres-backed record repository.
func NewRecordRepo(db *sql.DB) *RecordRepo { return &RecordRepo{db: db} }

func (r *RecordRepo) InsertFeatureRequest(ctx context.Context, rec domain.FeatureRequest) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO feature_requests (title, description, email)
		VALUES ($1, $2, $3)
		RETURNING id
	`, rec.Title, rec.Description, rec.Email).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert feature request: %w", err)
	}
	return id, nil
}

func (r *RecordRepo) InsertFeedback(ctx context.Context, rec domain.Feedback) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO feedback (name, email, message, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, rec.Name, rec.Email, rec.Message, rec.Rating).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert feedback: %w", err)
	}
	return id, nil
}

func (r *RecordRepo) InsertStatEvent(ctx context.Context, rec domain.StatEvent) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO app_stats (event_type, metadata)
		VALUES ($1, $2)
		RETURNING id
	`, rec.EventType, rec.Metadata).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert stat event: %w", err)
	}
	return id, nil
}
