// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/filmmatch/filmmatch-go/internal/cache"
	"github.com/filmmatch/filmmatch-go/internal/config"
	"github.com/filmmatch/filmmatch-go/internal/logging"
	"github.com/filmmatch/filmmatch-go/internal/metrics"
)

// maxErrorBodySize limits how much of a response body is read for error
// reporting, preventing unbounded allocation on large error responses.
const maxErrorBodySize = 64 * 1024 // 64KB

// TokenSource yields the bearer credential for outgoing requests.
// Implementations must read the credential at call time rather than caching
// it, so login/logout in another flow takes effect immediately. An empty
// token with a nil error means the session is anonymous.
type TokenSource interface {
	AccessToken() (string, error)
}

// APIError is a non-2xx response from the backend. Status carries the HTTP
// status code and Message the server-provided detail (or the status text if
// the body was unparseable).
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsClientError reports whether the error is an HTTP 4xx. Client errors are
// terminal: retrying an invalid request cannot succeed.
func (e *APIError) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

// errorDetail matches the backend's error body shape.
type errorDetail struct {
	Detail string `json:"detail"`
}

// Client is the FilmMatch backend API client.
//
// Thread safety: safe for concurrent use. Each request creates its own
// HTTP request; the token source is consulted per request.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	maxRetries     int           // Extra attempts for create/refine
	retryBaseDelay time.Duration // First retry delay; grows linearly
	limiter        *rate.Limiter // Optional client-side request cap

	trendingCache *cache.Cache[[]TrendingMovie]
	movieCache    *cache.Cache[*MovieSummary]
}

// New creates a backend API client from configuration. tokens may be nil for
// a client that never authenticates.
func New(cfg *config.APIConfig, tokens TokenSource) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		baseURL:        cfg.BaseURL,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		tokens:         tokens,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		limiter:        limiter,
		trendingCache:  cache.New[[]TrendingMovie](15 * time.Minute),
		movieCache:     cache.New[*MovieSummary](time.Hour),
	}
}

// retryDelay returns the backoff before retry attempt i (zero-based).
// Delays grow linearly: base, 2*base, 3*base...
func (c *Client) retryDelay(attempt int) time.Duration {
	return c.retryBaseDelay * time.Duration(attempt+1)
}

// request performs one HTTP request against the backend.
//
// body is JSON-encoded when non-nil; result is JSON-decoded from the
// response when non-nil. A 204 (or empty body with a nil result) resolves to
// success. Non-2xx responses return *APIError.
func (c *Client) request(ctx context.Context, operation, method, path string, body, result interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", operation, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.attachBearer(req); err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(operation, "network_error").Inc()
		return fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := c.parseError(resp)
		if apiErr.IsClientError() {
			metrics.APIRequestsTotal.WithLabelValues(operation, "client_error").Inc()
		} else {
			metrics.APIRequestsTotal.WithLabelValues(operation, "server_error").Inc()
		}
		return apiErr
	}

	metrics.APIRequestsTotal.WithLabelValues(operation, "success").Inc()

	// 204 resolves to an empty success value, not an error.
	if resp.StatusCode == http.StatusNoContent || result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

// attachBearer sets the Authorization header when a token is available. The
// token source is read per request, never cached across calls.
func (c *Client) attachBearer(req *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens.AccessToken()
	if err != nil {
		return fmt.Errorf("read access token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// parseError builds an *APIError from a non-2xx response.
func (c *Client) parseError(resp *http.Response) *APIError {
	limited := io.LimitReader(resp.Body, maxErrorBodySize)
	data, readErr := io.ReadAll(limited)

	message := resp.Status
	if readErr == nil && len(data) > 0 {
		var detail errorDetail
		if err := json.Unmarshal(data, &detail); err == nil && detail.Detail != "" {
			message = detail.Detail
		}
	}

	return &APIError{Status: resp.StatusCode, Message: message}
}

// requestWithRetry performs a request, retrying transient failures up to
// c.maxRetries extra times with linearly increasing backoff. Client errors
// (HTTP 4xx) are surfaced immediately without retrying.
func (c *Client) requestWithRetry(ctx context.Context, operation, method, path string, body, result interface{}) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		lastErr = c.request(ctx, operation, method, path, body, result)
		if lastErr == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(lastErr, &apiErr) && apiErr.IsClientError() {
			return lastErr
		}

		if attempt == c.maxRetries {
			break
		}

		metrics.APIRetriesTotal.WithLabelValues(operation).Inc()
		delay := c.retryDelay(attempt)
		logging.Ctx(ctx).Warn().
			Err(lastErr).
			Str("operation", operation).
			Int("attempt", attempt+1).
			Dur("backoff", delay).
			Msg("transient API failure, retrying")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}
