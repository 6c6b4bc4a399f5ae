package ingest

import (
	"context"

	"github.com/quickcalc/ingest/internal/domain"
)

// Store is the append-only persistence port. Each insert writes exactly one
// row and returns the store-assigned identifier; the store also owns the
// creation timestamp. Records are never updated or deleted.
type Store interface {
	InsertFeatureRequest(ctx context.Context, rec domain.FeatureRequest) (int64, error)
	InsertFeedback(ctx context.Context, rec domain.Feedback) (int64, error)
	InsertStatEvent(ctx context.Context, rec domain.StatEvent) (int64, error)
}
