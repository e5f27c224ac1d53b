// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

// Package api is the typed client for the FilmMatch backend REST API.
//
// The client covers the full /api/v1 surface: recommendation lifecycle
// (create, refine, react, select, receipt), movie lookups, user account and
// watchlist operations, group sessions, and magic-link authentication.
//
// Resilience:
//   - CreateRecommendation and Refine retry up to 2 extra times with linearly
//     increasing backoff (1s, 2s). Client errors (HTTP 4xx) are terminal and
//     never retried.
//   - An optional circuit breaker (BreakerClient) protects the recommendation
//     endpoints when the backend degrades.
//   - An optional client-side rate limiter caps outgoing request rate.
//
// Authentication: every request attaches a bearer token when the configured
// TokenSource yields one. Token absence is not an error; anonymous sessions
// are valid.
package api
