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

// CreateGroup creates a new group watch session with an optional name.
func (c *Client) CreateGroup(ctx context.Context, name string) (*GroupResponse, error) {
	body := map[string]interface{}{}
	if name != "" {
		body["name"] = name
	}
	var resp GroupResponse
	if err := c.request(ctx, "create_group", http.MethodPost, "/groups", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// JoinGroup joins an existing group by its share code.
func (c *Client) JoinGroup(ctx context.Context, joinCode string) (*GroupResponse, error) {
	body := map[string]string{"join_code": joinCode}
	var resp GroupResponse
	if err := c.request(ctx, "join_group", http.MethodPost, "/groups/join", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetGroup fetches the current state of a group session.
func (c *Client) GetGroup(ctx context.Context, groupID string) (*GroupResponse, error) {
	var resp GroupResponse
	path := "/groups/" + url.PathEscape(groupID)
	if err := c.request(ctx, "get_group", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitGroupPreferences submits one member's preferences to a group session.
func (c *Client) SubmitGroupPreferences(ctx context.Context, groupID string, prefs *GroupMemberPreferences) error {
	path := "/groups/" + url.PathEscape(groupID) + "/preferences"
	return c.request(ctx, "submit_group_preferences", http.MethodPost, path, prefs, nil)
}
