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

const trendingCacheKey = "trending"

// Trending returns the current trending movies. Results are cached
// briefly; the trending list changes on the order of hours.
func (c *Client) Trending(ctx context.Context) ([]TrendingMovie, error) {
	if cached, ok := c.trendingCache.Get(trendingCacheKey); ok {
		return cached, nil
	}
	var resp []TrendingMovie
	if err := c.request(ctx, "trending", http.MethodGet, "/movies/trending", nil, &resp); err != nil {
		return nil, err
	}
	c.trendingCache.Set(trendingCacheKey, resp)
	return resp, nil
}

// MovieDetails returns the full summary for one movie by TMDB id. Movie
// metadata is effectively immutable, so hits are served from cache.
func (c *Client) MovieDetails(ctx context.Context, tmdbID int) (*MovieSummary, error) {
	path := fmt.Sprintf("/movies/%d", tmdbID)
	if cached, ok := c.movieCache.Get(path); ok {
		return cached, nil
	}
	var resp MovieSummary
	if err := c.request(ctx, "movie_details", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	c.movieCache.Set(path, &resp)
	return &resp, nil
}
