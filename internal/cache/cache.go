// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

// Package cache provides a small thread-safe in-memory cache with TTL
// expiration, used to keep movie lookups off the network between prompts.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Stats tracks cache effectiveness.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Keys      int
}

// Cache is a thread-safe map with per-cache TTL. Expired entries are
// dropped lazily on read and swept on write, so no background goroutine
// is needed for a short-lived client process.
type Cache[V any] struct {
	mu        sync.RWMutex
	entries   map[string]entry[V]
	ttl       time.Duration
	hits      int64
	misses    int64
	evictions int64

	// now is replaceable for expiry tests.
	now func() time.Time
}

// New creates a cache whose entries expire ttl after they are set.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value for key. An expired entry counts as a miss
// and is removed.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.miss()
		var zero V
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; Set may have refreshed it.
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
			c.evictions++
		}
		c.misses++
		c.mu.Unlock()
		var zero V
		return zero, false
	}

	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	return e.value, true
}

// Set stores value under key with the cache's TTL, sweeping any other
// expired entries while it holds the lock.
func (c *Cache[V]) Set(key string, value V) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			c.evictions++
		}
	}
	c.entries[key] = entry[V]{value: value, expiresAt: now.Add(c.ttl)}
}

// Delete removes key if present.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Purge removes every entry.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Stats returns a snapshot of the cache's counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Keys:      len(c.entries),
	}
}

func (c *Cache[V]) miss() {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
}
