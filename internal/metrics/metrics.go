// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

// Package metrics provides Prometheus instrumentation for the FilmMatch client:
//   - Backend API request latency, throughput, and retry counts
//   - Circuit breaker state for the recommendation endpoints
//   - Engine-level counters (narrowing decisions, votes)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Client Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmmatch_api_requests_total",
			Help: "Total number of backend API requests",
		},
		[]string{"operation", "outcome"}, // outcome: "success", "client_error", "server_error", "network_error"
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filmmatch_api_request_duration_seconds",
			Help:    "Duration of backend API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	APIRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmmatch_api_retries_total",
			Help: "Total number of retry attempts for idempotent recommendation calls",
		},
		[]string{"operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "filmmatch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmmatch_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmmatch_circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	// Engine Metrics
	NarrowingDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmmatch_narrowing_decisions_total",
			Help: "Total number of swipe decisions processed by the narrowing engine",
		},
		[]string{"decision"}, // "keep", "reject"
	)

	VotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmmatch_votes_total",
			Help: "Total number of ballot toggles processed by the voting engine",
		},
		[]string{"direction"}, // "up", "down", "cleared"
	)
)
