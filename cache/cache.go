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

// Package cache implements the Link cache protocol: a pluggable Cache adapter
// keyed by query_hash, a visitor that serializes an Index subtree into a cacheable nested record,
// and update_index which replays a cached record back into a fresh Index.
package cache

import (
	"context"
	"time"
)

// Cache is the adapter the workflow reads/writes through at link granularity. Values are
// pre-serialized bytes: the workflow (via Serialize/MarshalRecord) owns the wire shape, the Cache
// only owns storage and TTL.
type Cache interface {
	// GetMany returns the subset of keys present in the cache, still serialized: the caller
	// deserializes. Missing keys are simply absent from the returned map -- not an error.
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)

	// SetMany stores items, each expiring after ttl. Implementations may treat ttl<=0 as "no
	// expiry" or reject it; the workflow always supplies a positive TTL from @cached(ttl).
	SetMany(ctx context.Context, items map[string][]byte, ttl time.Duration) error
}
