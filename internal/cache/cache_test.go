// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	t.Parallel()

	c := New[string](time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get on empty cache returned a value")
	}

	c.Set("k", "v")
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Fatalf("Get = %q, %v; want v, true", got, ok)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Keys != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestExpiry(t *testing.T) {
	t.Parallel()

	c := New[int](time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("k", 42)
	if got, ok := c.Get("k"); !ok || got != 42 {
		t.Fatalf("Get = %d, %v before expiry", got, ok)
	}

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, ok := c.Get("k"); ok {
		t.Fatal("Get returned an expired entry")
	}
	if stats := c.Stats(); stats.Evictions != 1 || stats.Keys != 0 {
		t.Fatalf("stats after expiry = %+v", stats)
	}
}

func TestSetSweepsExpired(t *testing.T) {
	t.Parallel()

	c := New[int](time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("old", 1)

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	c.Set("new", 2)

	if stats := c.Stats(); stats.Keys != 1 || stats.Evictions != 1 {
		t.Fatalf("stats after sweep = %+v", stats)
	}
}

func TestDeleteAndPurge(t *testing.T) {
	t.Parallel()

	c := New[int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("deleted key still present")
	}

	c.Purge()
	if stats := c.Stats(); stats.Keys != 0 {
		t.Fatalf("keys after purge = %d", stats.Keys)
	}
}

func TestSetRefreshesEntry(t *testing.T) {
	t.Parallel()

	c := New[string](time.Minute)
	c.Set("k", "old")
	c.Set("k", "new")
	if got, _ := c.Get("k"); got != "new" {
		t.Fatalf("Get = %q, want new", got)
	}
}
