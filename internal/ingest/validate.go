package ingest

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/quickcalc/ingest/internal/domain"
)

// Field size caps. The submission forms are small; anything past these
// limits is either a bug or abuse, and rejecting keeps storage bounded.
const (
	maxTitleLen     = 200
	maxNameLen      = 200
	maxEmailLen     = 320
	maxTextLen      = 5000
	maxMetadataSize = 8 * 1024 // serialized bytes
)

// ValidationError reports the first rule a payload violated. Message is the
// exact string returned to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidateFeatureRequest checks a decoded payload against the feature
// request schema and returns the normalized record. Pure; no side effects.
func ValidateFeatureRequest(payload map[string]any) (*domain.FeatureRequest, error) {
	title, ok := requiredString(payload, "title")
	if !ok {
		return nil, invalid("title", "Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, invalid("title", "Title is too long")
	}

	description := optionalString(payload, "description")
	if len(description.String) > maxTextLen {
		return nil, invalid("description", "Description is too long")
	}
	email := optionalString(payload, "email")
	if len(email.String) > maxEmailLen {
		return nil, invalid("email", "Email is too long")
	}

	return &domain.FeatureRequest{
		Title:       title,
		Description: description,
		Email:       email,
	}, nil
}

// ValidateFeedback checks a decoded payload against the feedback schema and
// returns the normalized record.
func ValidateFeedback(payload map[string]any) (*domain.Feedback, error) {
	message, ok := requiredString(payload, "message")
	if !ok {
		return nil, invalid("message", "Message is required")
	}
	if len(message) > maxTextLen {
		return nil, invalid("message", "Message is too long")
	}

	rating, err := optionalRating(payload)
	if err != nil {
		return nil, err
	}

	name := optionalString(payload, "name")
	if len(name.String) > maxNameLen {
		return nil, invalid("name", "Name is too long")
	}
	email := optionalString(payload, "email")
	if len(email.String) > maxEmailLen {
		return nil, invalid("email", "Email is too long")
	}

	return &domain.Feedback{
		Name:    name,
		Email:   email,
		Message: message,
		Rating:  rating,
	}, nil
}

// ValidateStatEvent checks a decoded payload against the stat event schema.
// Metadata, when present, is serialized to JSON text so the store can treat
// it as an opaque value.
func ValidateStatEvent(payload map[string]any) (*domain.StatEvent, error) {
	eventType, isString := payload["event_type"].(string)
	if !isString || eventType == "" {
		return nil, invalid("event_type", "event_type is required")
	}

	metadata := sql.NullString{}
	if raw, present := payload["metadata"]; present && raw != nil {
		serialized, err := json.Marshal(raw)
		if err != nil {
			return nil, invalid("metadata", "Invalid metadata")
		}
		if len(serialized) > maxMetadataSize {
			return nil, invalid("metadata", "Metadata is too large")
		}
		metadata = sql.NullString{String: string(serialized), Valid: true}
	}

	return &domain.StatEvent{
		EventType: eventType,
		Metadata:  metadata,
	}, nil
}

// requiredString extracts a string field that must be non-empty after
// trimming. The trimmed value is returned.
func requiredString(payload map[string]any, key string) (string, bool) {
	s, isString := payload[key].(string)
	trimmed := strings.TrimSpace(s)
	if !isString || trimmed == "" {
		return "", false
	}
	return trimmed, true
}

// optionalString extracts a string field, normalizing missing, null,
// non-string, and whitespace-only values to absent.
func optionalString(payload map[string]any, key string) sql.NullString {
	s, isString := payload[key].(string)
	trimmed := strings.TrimSpace(s)
	if !isString || trimmed == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: trimmed, Valid: true}
}

// optionalRating extracts the feedback rating. Any present value that is not
// an integer in [1, 5] is rejected, including zero.
func optionalRating(payload map[string]any) (sql.NullInt64, error) {
	raw, present := payload["rating"]
	if !present || raw == nil {
		return sql.NullInt64{}, nil
	}

	var rating int64
	switch v := raw.(type) {
	case float64: // JSON numbers decode as float64
		if v != math.Trunc(v) {
			return sql.NullInt64{}, invalid("rating", "Rating must be between 1 and 5")
		}
		rating = int64(v)
	case int:
		rating = int64(v)
	case int64:
		rating = v
	default:
		return sql.NullInt64{}, invalid("rating", "Rating must be between 1 and 5")
	}

	if rating < 1 || rating > 5 {
		return sql.NullInt64{}, invalid("rating", "Rating must be between 1 and 5")
	}
	return sql.NullInt64{Int64: rating, Valid: true}, nil
}
