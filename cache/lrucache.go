/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type lruEntry struct {
	data      []byte
	expiresAt time.Time
}

// LRUCache is an in-process Cache backed by a fixed-capacity hashicorp/golang-lru/v2.Cache, for
// single-instance deployments that don't need a shared cache tier.
type LRUCache struct {
	inner *lru.Cache[string, lruEntry]
	now   func() time.Time
}

var _ Cache = (*LRUCache)(nil)

// NewLRUCache returns an LRUCache holding at most size entries.
func NewLRUCache(size int) (*LRUCache, error) {
	inner, err := lru.New[string, lruEntry](size)
	if err != nil {
		return nil, err
	}
	return &LRUCache{inner: inner, now: time.Now}, nil
}

// GetMany implements Cache.
func (c *LRUCache) GetMany(_ context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	now := c.now()
	for _, key := range keys {
		entry, ok := c.inner.Get(key)
		if !ok {
			continue
		}
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			c.inner.Remove(key)
			continue
		}
		out[key] = entry.data
	}
	return out, nil
}

// SetMany implements Cache.
func (c *LRUCache) SetMany(_ context.Context, items map[string][]byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	for key, data := range items {
		c.inner.Add(key, lruEntry{data: data, expiresAt: expiresAt})
	}
	return nil
}
