// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package credstore

import (
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return store
}

func TestFreshStoreIsAnonymous(t *testing.T) {
	store := openTestStore(t)

	token, err := store.AccessToken()
	if err != nil {
		t.Fatalf("AccessToken() error = %v", err)
	}
	if token != "" {
		t.Errorf("fresh store token = %q, want empty", token)
	}

	onboarded, err := store.Onboarded()
	if err != nil {
		t.Fatalf("Onboarded() error = %v", err)
	}
	if onboarded {
		t.Error("fresh store should not be onboarded")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SetTokens() error = %v", err)
	}

	access, err := store.AccessToken()
	if err != nil {
		t.Fatalf("AccessToken() error = %v", err)
	}
	if access != "access-1" {
		t.Errorf("access token = %q, want %q", access, "access-1")
	}

	refresh, err := store.RefreshToken()
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if refresh != "refresh-1" {
		t.Errorf("refresh token = %q, want %q", refresh, "refresh-1")
	}
}

func TestClearTokensReturnsToAnonymous(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SetTokens() error = %v", err)
	}
	if err := store.ClearTokens(); err != nil {
		t.Fatalf("ClearTokens() error = %v", err)
	}

	token, err := store.AccessToken()
	if err != nil {
		t.Fatalf("AccessToken() error = %v", err)
	}
	if token != "" {
		t.Errorf("token after clear = %q, want empty", token)
	}

	// Clearing an anonymous store is a no-op, not an error.
	if err := store.ClearTokens(); err != nil {
		t.Errorf("ClearTokens() on anonymous store = %v, want nil", err)
	}
}

func TestOnboardedFlag(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetOnboarded(); err != nil {
		t.Fatalf("SetOnboarded() error = %v", err)
	}
	onboarded, err := store.Onboarded()
	if err != nil {
		t.Fatalf("Onboarded() error = %v", err)
	}
	if !onboarded {
		t.Error("Onboarded() = false after SetOnboarded()")
	}
}
