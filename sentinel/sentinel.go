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

// Package sentinel holds the handful of singleton values shared across every package in the
// engine: Nothing, the pseudo-root address, and the cache version tag. They live in
// their own leaf package so graph, query, idx, cache and workflow can all refer to them without
// creating import cycles.
package sentinel

// Value is the type of Nothing, used anywhere a resolved value, an option value, or a link ident
// may be legitimately absent.
type Value struct{ name string }

func (v Value) String() string { return v.name }

// Nothing represents "absent": an Option with no supplied value and no default, or the value of
// a Maybe-cardinality link that resolved to no target.
var Nothing = Value{name: "Nothing"}

// IsNothing reports whether v is the Nothing sentinel.
func IsNothing(v interface{}) bool {
	n, ok := v.(Value)
	return ok && n == Nothing
}

// Root is the pseudo-reference used by Proxy and Index to address the root record.
type rootMarker struct{}

// ROOT is the distinguished marker addressing the Index's root bucket.
var ROOT = rootMarker{}

// CacheVersion is the opaque constant folded into every cache key. Bumping it
// invalidates every previously cached entry across a deploy.
const CacheVersion = "v1"
