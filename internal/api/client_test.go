// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/filmmatch/filmmatch-go/internal/config"
)

// staticTokens is a TokenSource returning a fixed token.
type staticTokens string

func (s staticTokens) AccessToken() (string, error) { return string(s), nil }

// failingTokens is a TokenSource whose read always fails.
type failingTokens struct{}

func (failingTokens) AccessToken() (string, error) {
	return "", errors.New("store unavailable")
}

// newTestClient builds a client against a test server with fast retries.
func newTestClient(t *testing.T, srv *httptest.Server, tokens TokenSource) *Client {
	t.Helper()
	return New(&config.APIConfig{
		BaseURL:        srv.URL,
		Timeout:        5 * time.Second,
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
	}, tokens)
}

func sampleResponse() RecommendationResponse {
	year := "2014"
	score := 9.2
	return RecommendationResponse{
		SessionID: "sess-1",
		BestPick: MovieSummary{
			TMDBID:     157336,
			Title:      "Interstellar",
			Year:       &year,
			Genres:     []string{"Sci-Fi", "Drama"},
			MatchScore: &score,
			Rationale:  "Matches your mind-bending mood",
		},
		ModelUsed: "gpt-4o",
	}
}

func TestCreateRecommendationRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if err := json.NewEncoder(w).Encode(sampleResponse()); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)
	resp, err := client.CreateRecommendation(context.Background(), &RecommendationRequest{
		Mode:  ModeSolo,
		Users: []UserProfile{{Name: "Sam", LikesGenres: []string{"Sci-Fi"}, Mood: []string{"Mind-bending"}}},
	})
	if err != nil {
		t.Fatalf("CreateRecommendation() error = %v", err)
	}
	if resp.SessionID != "sess-1" {
		t.Errorf("session id = %q, want %q", resp.SessionID, "sess-1")
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3 (two retries then success)", got)
	}
}

func TestCreateRecommendationDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "users must not be empty"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)
	_, err := client.CreateRecommendation(context.Background(), &RecommendationRequest{Mode: ModeSolo})
	if err == nil {
		t.Fatal("CreateRecommendation() expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.Status)
	}
	if !apiErr.IsClientError() {
		t.Error("IsClientError() = false, want true")
	}
	if apiErr.Message != "users must not be empty" {
		t.Errorf("message = %q, want server detail", apiErr.Message)
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1 (4xx is terminal)", got)
	}
}

func TestCreateRecommendationRetriesExhaust(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)
	_, err := client.CreateRecommendation(context.Background(), &RecommendationRequest{Mode: ModeSolo})
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway {
		t.Fatalf("expected 502 APIError, got %v", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3 (initial + 2 retries)", got)
	}
}

func TestRetryDelayGrowsLinearly(t *testing.T) {
	t.Parallel()

	c := &Client{retryBaseDelay: time.Second}
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 3 * time.Second},
	}
	for _, tt := range tests {
		if got := c.retryDelay(tt.attempt); got != tt.expected {
			t.Errorf("retryDelay(%d) = %s, want %s", tt.attempt, got, tt.expected)
		}
	}
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, staticTokens("tok-123"))
	if err := client.AddToWatchlist(context.Background(), 42); err != nil {
		t.Fatalf("AddToWatchlist() error = %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestAnonymousRequestsOmitAuthorization(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	// Empty token from the source is not an error: anonymous sessions are valid.
	client := newTestClient(t, srv, staticTokens(""))
	if err := client.AddToWatchlist(context.Background(), 42); err != nil {
		t.Fatalf("AddToWatchlist() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty for anonymous session", gotAuth)
	}
}

func TestTokenSourceFailureSurfaces(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, failingTokens{})
	err := client.AddToWatchlist(context.Background(), 42)
	if err == nil {
		t.Fatal("expected error when token source fails")
	}
}

func TestNoContentResolvesToEmptySuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)
	err := client.React(context.Background(), "sess-1", &ReactionRequest{TMDBID: 42, Positive: true})
	if err != nil {
		t.Errorf("React() on 204 = %v, want nil", err)
	}
}

func TestParseErrorFallsBackToStatusLine(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<not json>"))
	}))
	defer srv.Close()

	client := New(&config.APIConfig{
		BaseURL:        srv.URL,
		Timeout:        5 * time.Second,
		MaxRetries:     0,
		RetryBaseDelay: time.Millisecond,
	}, nil)

	_, err := client.Me(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", apiErr.Status)
	}
	if apiErr.Message == "" {
		t.Error("message should fall back to the status line, got empty")
	}
}

func TestRefineOmittedOverlapSummaryDecodesNil(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Refine response with no overlap_summary field at all.
		_, _ = w.Write([]byte(`{"session_id":"sess-1","best_pick":{"tmdb_id":1,"title":"A","year":null,"genres":[],"vote_average":7.1,"runtime":null,"poster_url":null,"backdrop_url":null,"overview":"","directors":[],"cast":[],"match_score":null,"rationale":""},"additional_picks":[],"narrow_question":null,"model_used":"gpt-4o"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)
	resp, err := client.Refine(context.Background(), "sess-1", &NarrowRequest{Feedback: "narrowed"})
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}
	if resp.OverlapSummary != nil {
		t.Errorf("OverlapSummary = %v, want nil when omitted", *resp.OverlapSummary)
	}
	if resp.BestPick.MatchScore != nil {
		t.Errorf("MatchScore = %v, want nil when null", *resp.BestPick.MatchScore)
	}
	if resp.BestPick.Rationale != "" {
		t.Errorf("Rationale = %q, want empty string", resp.BestPick.Rationale)
	}
}

func TestContextCancellationStopsRetries(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := New(&config.APIConfig{
		BaseURL:        srv.URL,
		Timeout:        5 * time.Second,
		MaxRetries:     5,
		RetryBaseDelay: time.Hour, // Would hang without cancellation
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.CreateRecommendation(ctx, &RecommendationRequest{Mode: ModeSolo})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}
