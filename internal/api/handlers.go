package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/quickcalc/ingest/internal/ingest"
)

// Handlers holds the HTTP handlers for the submission endpoints
type Handlers struct {
	store  ingest.Store
	logger *slog.Logger
}

// NewHandlers creates handlers backed by the given store
func NewHandlers(store ingest.Store, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{store: store, logger: logger}
}

// recordKind parameterizes the shared submission pipeline for one record
// kind: how to validate-and-insert the payload, what to say on success, and
// what to say when the store fails.
type recordKind struct {
	name        string
	serverError string
	ingest      func(ctx context.Context, payload map[string]any) (int64, error)
	respond     func(id int64) any
}

// handleSubmission runs the decode -> validate -> persist -> respond
// pipeline. Validation failures never reach the store; store failures are
// logged with an incident id and never echoed to the client.
func (h *Handlers) handleSubmission(w http.ResponseWriter, r *http.Request, kind recordKind) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := kind.ingest(r.Context(), payload)
	if err != nil {
		var verr *ingest.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Message)
			return
		}
		h.logger.Error("submission failed",
			"kind", kind.name,
			"incident", uuid.NewString(),
			"error", err,
		)
		respondError(w, http.StatusInternalServerError, kind.serverError)
		return
	}

	respondJSON(w, http.StatusCreated, kind.respond(id))
}

// SubmitFeatureRequest handles POST /api/feature-request
func (h *Handlers) SubmitFeatureRequest(w http.ResponseWriter, r *http.Request) {
	h.handleSubmission(w, r, recordKind{
		name:        "feature_request",
		serverError: "Failed to submit feature request",
		ingest: func(ctx context.Context, payload map[string]any) (int64, error) {
			rec, err := ingest.ValidateFeatureRequest(payload)
			if err != nil {
				return 0, err
			}
			return h.store.InsertFeatureRequest(ctx, *rec)
		},
		respond: func(id int64) any {
			return map[string]any{
				"success": true,
				"id":      id,
				"message": "Feature request submitted successfully!",
			}
		},
	})
}

// SubmitFeedback handles POST /api/feedback
func (h *Handlers) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	h.handleSubmission(w, r, recordKind{
		name:        "feedback",
		serverError: "Failed to submit feedback",
		ingest: func(ctx context.Context, payload map[string]any) (int64, error) {
			rec, err := ingest.ValidateFeedback(payload)
			if err != nil {
				return 0, err
			}
			return h.store.InsertFeedback(ctx, *rec)
		},
		respond: func(id int64) any {
			return map[string]any{
				"success": true,
				"id":      id,
				"message": "Thank you for your feedback!",
			}
		},
	})
}

// LogStat handles POST /api/stats. The acknowledgement carries no id; the
// submitting side treats telemetry as fire-and-forget.
func (h *Handlers) LogStat(w http.ResponseWriter, r *http.Request) {
	h.handleSubmission(w, r, recordKind{
		name:        "stat_event",
		serverError: "Failed to log stats",
		ingest: func(ctx context.Context, payload map[string]any) (int64, error) {
			rec, err := ingest.ValidateStatEvent(payload)
			if err != nil {
				return 0, err
			}
			return h.store.InsertStatEvent(ctx, *rec)
		},
		respond: func(int64) any {
			return map[string]any{"success": true}
		},
	})
}

// HealthCheck returns the health status of the API
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
