package domain

import "database/sql"

// FeatureRequest is a normalized feature-request submission.
// Title is always non-empty and trimmed; optional fields are NULL when the
// caller omitted them or sent only whitespace.
type FeatureRequest struct {
	Title       string
	Description sql.NullString
	Email       sql.NullString
}

// Feedback is a normalized feedback/testimonial submission.
// Message is always non-empty and trimmed; Rating, when set, is in [1, 5].
type Feedback struct {
	Name    sql.NullString
	Email   sql.NullString
	Message string
	Rating  sql.NullInt64
}

// StatEvent is a normalized anonymous usage event. Metadata holds the
// submitted structured value serialized to JSON text, or NULL when absent.
type StatEvent struct {
	EventType string
	Metadata  sql.NullString
}
