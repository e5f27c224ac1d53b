// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package api

import (
	"context"
	"fmt"
	"net/http"
)

// Me returns the authenticated account.
func (c *Client) Me(ctx context.Context) (*UserResponse, error) {
	var resp UserResponse
	if err := c.request(ctx, "me", http.MethodGet, "/users/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdatePreferences patches stored account preferences. Only fields present
// in the update are modified.
func (c *Client) UpdatePreferences(ctx context.Context, prefs *PreferencesUpdate) error {
	return c.request(ctx, "update_preferences", http.MethodPatch, "/users/me/preferences", prefs, nil)
}

// WatchHistory returns the account's watch history entries.
func (c *Client) WatchHistory(ctx context.Context) ([]WatchHistoryItem, error) {
	var resp []WatchHistoryItem
	if err := c.request(ctx, "watch_history", http.MethodGet, "/users/me/history", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AddToWatchlist saves a movie to the account watchlist.
func (c *Client) AddToWatchlist(ctx context.Context, tmdbID int) error {
	body := &SelectionRequest{TMDBID: tmdbID}
	return c.request(ctx, "add_to_watchlist", http.MethodPost, "/users/me/watchlist", body, nil)
}

// RemoveFromWatchlist deletes a movie from the account watchlist.
func (c *Client) RemoveFromWatchlist(ctx context.Context, tmdbID int) error {
	path := fmt.Sprintf("/users/me/watchlist/%d", tmdbID)
	return c.request(ctx, "remove_from_watchlist", http.MethodDelete, path, nil, nil)
}

// RateMovie marks a watchlist entry watched with the given rating.
func (c *Client) RateMovie(ctx context.Context, tmdbID int, rating float64) error {
	path := fmt.Sprintf("/users/me/watchlist/%d/rate", tmdbID)
	body := map[string]interface{}{"rating": rating, "status": "watched"}
	return c.request(ctx, "rate_movie", http.MethodPatch, path, body, nil)
}

// TasteProfile returns the server-computed taste profile for the account.
func (c *Client) TasteProfile(ctx context.Context) (*TasteProfile, error) {
	var resp TasteProfile
	if err := c.request(ctx, "taste_profile", http.MethodGet, "/users/me/taste-profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitFeedback records product feedback, optionally tied to a session.
// Failures here are expected to be isolated by callers; they must never
// interrupt a recommendation flow.
func (c *Client) SubmitFeedback(ctx context.Context, req *FeedbackRequest) error {
	return c.request(ctx, "submit_feedback", http.MethodPost, "/users/me/feedback", req, nil)
}
