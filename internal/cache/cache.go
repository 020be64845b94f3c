// Package cache provides the session-scoped row memo that sits in front of
// the stats store, plus ETag helpers for JSON responses.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
)

// FetchFunc loads the rows for a key on a cache miss.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Rows memoizes row slices by key. Entries live until Clear; there is no TTL.
// Empty fetch results are never stored so data that appears later is picked
// up on the next call.
type Rows[T any] struct {
	mu      sync.RWMutex
	entries map[string][]T
	enabled bool

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRows creates a row cache. Pass enabled=false for a pass-through cache.
func NewRows[T any](enabled bool) *Rows[T] {
	return &Rows[T]{
		entries: make(map[string][]T),
		enabled: enabled,
	}
}

// GetWithCache returns the memoized rows for key or loads them with fetch.
// Concurrent misses on the same key may each call fetch; the last write wins.
func (c *Rows[T]) GetWithCache(ctx context.Context, key string, fetch FetchFunc[T]) ([]T, error) {
	if c == nil || !c.enabled {
		return fetch(ctx)
	}

	c.mu.RLock()
	rows, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return rows, nil
	}
	c.misses.Add(1)

	rows, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return rows, nil
	}

	c.mu.Lock()
	c.entries[key] = rows
	c.mu.Unlock()
	return rows, nil
}

// Clear drops every entry.
func (c *Rows[T]) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// Len returns the number of cached keys.
func (c *Rows[T]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Rows[T]) Stats() map[string]interface{} {
	if c == nil {
		return map[string]interface{}{"enabled": false}
	}
	return map[string]interface{}{
		"enabled": c.enabled,
		"keys":    c.Len(),
		"hits":    c.hits.Load(),
		"misses":  c.misses.Load(),
	}
}

// PlayerKey is the cache key for one player's stat rows.
func PlayerKey(playerID string) string { return "player:" + playerID }

// TeamKey is the cache key for one team's stat rows.
func TeamKey(teamID string) string { return "team:" + teamID }
