package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeatureRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/feature-request", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Dark mode", payload["title"])
		assert.NotContains(t, payload, "email") // omitempty keeps blanks off the wire

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"id":      42,
			"message": "Feature request submitted successfully!",
		})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	ack, err := c.SubmitFeatureRequest(context.Background(), FeatureRequestInput{Title: "Dark mode"})
	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Equal(t, int64(42), ack.ID)
	assert.Equal(t, "Feature request submitted successfully!", ack.Message)
}

func TestSubmitFeedback_SurfacesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Message is required"})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	ack, err := c.SubmitFeedback(context.Background(), FeedbackInput{})
	assert.Nil(t, ack)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Message is required")
}

func TestSubmitFeatureRequest_SurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to submit feature request"})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	_, err := c.SubmitFeatureRequest(context.Background(), FeatureRequestInput{Title: "Dark mode"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to submit feature request")
}

func TestSubmitFeatureRequest_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL + "/api")
	_, err := c.SubmitFeatureRequest(context.Background(), FeatureRequestInput{Title: "Dark mode"})
	assert.Error(t, err)
}

func TestLogStat_Delivers(t *testing.T) {
	received := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		received <- payload

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	c.LogStat("app_opened", map[string]any{"source": "widget"})

	select {
	case payload := <-received:
		assert.Equal(t, "app_opened", payload["event_type"])
		assert.Equal(t, map[string]any{"source": "widget"}, payload["metadata"])
	case <-time.After(5 * time.Second):
		t.Fatal("stat event never arrived")
	}
}

func TestLogStat_OmitsAbsentMetadata(t *testing.T) {
	received := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		json.NewDecoder(r.Body).Decode(&payload)
		received <- payload
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	c.LogStat("app_opened", nil)

	select {
	case payload := <-received:
		assert.NotContains(t, payload, "metadata")
	case <-time.After(5 * time.Second):
		t.Fatal("stat event never arrived")
	}
}

func TestLogStat_SwallowsFailures(t *testing.T) {
	received := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- struct{}{}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	c.LogStat("app_opened", nil) // must not panic or surface anything

	select {
	case <-received:
	case <-time.After(5 * time.Second):
		t.Fatal("stat event never attempted")
	}
}

func TestLogStat_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL + "/api")
	c.LogStat("app_opened", nil) // fire-and-forget: nothing to observe, nothing may escape

	// Give the detached goroutine a moment to run into the dead socket.
	time.Sleep(50 * time.Millisecond)
}
