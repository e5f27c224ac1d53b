// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package api

import (
	"context"
	"net/http"
	"net/url"
)

// CreateRecommendation submits a preference set and returns the initial
// recommendation session. Transient failures are retried with linear
// backoff; HTTP 4xx responses are terminal.
func (c *Client) CreateRecommendation(ctx context.Context, req *RecommendationRequest) (*RecommendationResponse, error) {
	var resp RecommendationResponse
	if err := c.requestWithRetry(ctx, "create_recommendation", http.MethodPost, "/recommendations", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refine narrows an existing session using swipe feedback. The returned
// response replaces the session wholesale. Retried like CreateRecommendation.
func (c *Client) Refine(ctx context.Context, sessionID string, req *NarrowRequest) (*RecommendationResponse, error) {
	var resp RecommendationResponse
	path := "/recommendations/" + url.PathEscape(sessionID) + "/refine"
	if err := c.requestWithRetry(ctx, "refine", http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// React records a thumbs up/down reaction to one candidate in a session.
func (c *Client) React(ctx context.Context, sessionID string, req *ReactionRequest) error {
	path := "/recommendations/" + url.PathEscape(sessionID) + "/react"
	return c.request(ctx, "react", http.MethodPost, path, req, nil)
}

// Select records the final movie chosen for a session.
func (c *Client) Select(ctx context.Context, sessionID string, req *SelectionRequest) error {
	path := "/recommendations/" + url.PathEscape(sessionID) + "/select"
	return c.request(ctx, "select", http.MethodPost, path, req, nil)
}

// Receipt fetches the decision receipt summarizing how a session concluded.
func (c *Client) Receipt(ctx context.Context, sessionID string) (*DecisionReceipt, error) {
	var resp DecisionReceipt
	path := "/recommendations/" + url.PathEscape(sessionID) + "/receipt"
	if err := c.request(ctx, "receipt", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
