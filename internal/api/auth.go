// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package api

import (
	"context"
	"net/http"
)

// RequestMagicLink asks the backend to email a one-time login link.
func (c *Client) RequestMagicLink(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.request(ctx, "request_magic_link", http.MethodPost, "/auth/magic-link", body, nil)
}

// VerifyMagicLink exchanges a magic-link token for access and refresh tokens.
// Callers are responsible for persisting the returned tokens.
func (c *Client) VerifyMagicLink(ctx context.Context, token string) (*TokenResponse, error) {
	body := map[string]string{"token": token}
	var resp TokenResponse
	if err := c.request(ctx, "verify_magic_link", http.MethodPost, "/auth/verify", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshTokens exchanges a refresh token for a new token pair.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var resp TokenResponse
	if err := c.request(ctx, "refresh_tokens", http.MethodPost, "/auth/refresh", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the current session server-side. Callers should clear
// locally stored tokens regardless of the result.
func (c *Client) Logout(ctx context.Context) error {
	return c.request(ctx, "logout", http.MethodPost, "/auth/logout", nil, nil)
}
