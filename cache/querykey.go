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
	"crypto/sha1"
	"encoding/hex"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/btree"

	"github.com/okorienev/hiku/query"
	"github.com/okorienev/hiku/sentinel"
)

var canonicalJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// QueryHash computes the cache key for one (link, requiresValue) pair: SHA1 of the link's nested
// traversal, the requires-value's canonical representation, and sentinel.CacheVersion, so that a
// deploy bumping CacheVersion invalidates every previously-written key without touching the store.
func QueryHash(link *query.Link, requiresValue interface{}) string {
	h := sha1.New()
	for _, key := range traverse(link) {
		h.Write([]byte(key))
		h.Write([]byte{0})
	}
	if requiresValue != nil && !sentinel.IsNothing(requiresValue) {
		if b, err := canonicalJSON.Marshal(requiresValue); err == nil {
			h.Write(b)
		}
	}
	h.Write([]byte(sentinel.CacheVersion))
	return hex.EncodeToString(h.Sum(nil))
}

// traverse collects the index_key of link itself and of every QueryField/QueryLink reachable
// under its nested QueryNode, in a stable (sorted) order so that two structurally-identical
// queries whose items merely arrived in a different slice order hash identically. Keys are run
// through a btree.Map, keyed by index_key with an occurrence count as the value, so a repeated
// key (the same field selected twice under different options that happen to share an index_key)
// survives the ordering pass rather than collapsing like it would through a plain set.
func traverse(link *query.Link) []string {
	var counts btree.Map[string, int]
	add := func(key string) {
		n, _ := counts.Get(key)
		counts.Set(key, n+1)
	}

	add(link.IndexKey)
	if link.Node != nil {
		for _, key := range traverseNode(link.Node) {
			add(key)
		}
	}

	keys := make([]string, 0, counts.Len())
	counts.Scan(func(key string, n int) bool {
		for i := 0; i < n; i++ {
			keys = append(keys, key)
		}
		return true
	})
	return keys
}

func traverseNode(node *query.Node) []string {
	keys := make([]string, 0, len(node.Items))
	for _, item := range node.Items {
		switch it := item.(type) {
		case *query.Field:
			keys = append(keys, it.IndexKey)
		case *query.Link:
			keys = append(keys, traverse(it)...)
		}
	}
	return keys
}
