// Package client is the Go adapter for the submission API, mirroring the
// calls the calculator UI makes against it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client submits records to the ingestion service. The base URL is resolved
// once at construction and never re-resolved per call.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client addressing the service at baseURL, e.g.
// "http://localhost:8080/api".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Ack is the service's acknowledgement of a persisted submission.
type Ack struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// FeatureRequestInput is the payload for SubmitFeatureRequest.
type FeatureRequestInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Email       string `json:"email,omitempty"`
}

// FeedbackInput is the payload for SubmitFeedback. Rating 0 means unset.
type FeedbackInput struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message"`
	Rating  int    `json:"rating,omitempty"`
}

// SubmitFeatureRequest submits a feature request and returns the service's
// acknowledgement. Any non-success response surfaces as an error.
func (c *Client) SubmitFeatureRequest(ctx context.Context, input FeatureRequestInput) (*Ack, error) {
	return c.post(ctx, "/feature-request", input)
}

// SubmitFeedback submits feedback and returns the service's
// acknowledgement. Any non-success response surfaces as an error.
func (c *Client) SubmitFeedback(ctx context.Context, input FeedbackInput) (*Ack, error) {
	return c.post(ctx, "/feedback", input)
}

// LogStat records a usage event, fire-and-forget. The request runs on its
// own goroutine with its own deadline; its outcome is never reported.
// Telemetry must not block or break the caller.
func (c *Client) LogStat(eventType string, metadata map[string]any) {
	payload := map[string]any{"event_type": eventType}
	if metadata != nil {
		payload["metadata"] = metadata
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, _ = c.post(ctx, "/stats", payload) // silently drop stat failures
	}()
}

func (c *Client) post(ctx context.Context, path string, payload any) (*Ack, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("POST %s: %s (status %d)", path, apiErr.Error, resp.StatusCode)
		}
		return nil, fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
	}

	var ack Ack
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &ack, nil
}
