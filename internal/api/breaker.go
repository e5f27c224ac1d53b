// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package api

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/filmmatch/filmmatch-go/internal/logging"
	"github.com/filmmatch/filmmatch-go/internal/metrics"
)

// BreakerClient wraps the recommendation endpoints with a circuit breaker.
// When the backend degrades, the breaker fails fast instead of piling
// retried requests onto an unhealthy service. Only create and refine are
// protected; cheap fire-and-forget calls (react, select) pass through the
// inner client directly.
//
// The breaker uses real time for its interval and timeout calculations.
// Tests should exercise the inner client directly or drive the breaker
// through failures rather than mocking time.
type BreakerClient struct {
	*Client
	cb   *gobreaker.CircuitBreaker[*RecommendationResponse]
	name string
}

// NewBreakerClient wraps an API client with circuit breaker protection.
// Configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window in closed state
//   - 2 minute open period before attempting recovery
//   - Opens at >= 60% failure rate with a minimum of 10 requests
//
// Client errors (HTTP 4xx) do not count as failures: they indicate a bad
// request, not an unhealthy backend.
func NewBreakerClient(inner *Client) *BreakerClient {
	cbName := "filmmatch-recommend"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[*RecommendationResponse](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening recommendation circuit")
			}
			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.IsClientError()
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("recommendation circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerClient{Client: inner, cb: cb, name: cbName}
}

// CreateRecommendation submits a preference set through the circuit breaker.
func (b *BreakerClient) CreateRecommendation(ctx context.Context, req *RecommendationRequest) (*RecommendationResponse, error) {
	return b.execute(func() (*RecommendationResponse, error) {
		return b.Client.CreateRecommendation(ctx, req)
	})
}

// Refine narrows an existing session through the circuit breaker.
func (b *BreakerClient) Refine(ctx context.Context, sessionID string, req *NarrowRequest) (*RecommendationResponse, error) {
	return b.execute(func() (*RecommendationResponse, error) {
		return b.Client.Refine(ctx, sessionID, req)
	})
}

// execute runs a recommendation call through the breaker, recording metrics.
func (b *BreakerClient) execute(fn func() (*RecommendationResponse, error)) (*RecommendationResponse, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("recommendation request rejected by circuit breaker")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

// stateToFloat maps a breaker state onto the state gauge scale.
func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
