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

package idx

import "sync"

// Record is one `(index_key -> value)` row: a resolved field's scalar, a nested record, or a
// Reference.
type Record map[string]interface{}

// Index is the normalized per-request result store: a two-level map `node_name -> id ->
// (index_key -> value)`, plus a root bucket for fields resolved directly off Root. The zero value
// is not usable; construct with New.
//
// Concurrency: the workflow's own invariant (a disjoint write-set per cell) means Index writes
// never race on the *same* cell, but different goroutines do write different cells concurrently,
// so every access still goes through mu.
type Index struct {
	mu     sync.Mutex
	nodes  map[string]map[interface{}]Record
	root   Record
	frozen bool
}

// New returns an empty, writable Index.
func New() *Index {
	return &Index{
		nodes: make(map[string]map[interface{}]Record),
		root:  make(Record),
	}
}

// Root returns the root bucket, auto-inserting nothing further since Root has exactly one record.
func (idx *Index) Root() Record {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.root
}

// Get returns the id-keyed bucket for nodeName, auto-inserting an empty bucket on first access.
func (idx *Index) Get(nodeName string) map[interface{}]Record {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.getOrInsertNodeLocked(nodeName)
}

func (idx *Index) getOrInsertNodeLocked(nodeName string) map[interface{}]Record {
	bucket, ok := idx.nodes[nodeName]
	if !ok {
		bucket = make(map[interface{}]Record)
		idx.nodes[nodeName] = bucket
	}
	return bucket
}

// GetOrInsert returns the Record for (nodeName, ident), auto-inserting an empty Record on first
// access. It splits the auto-vivifying lookup into two explicit operations, Get (node-level) and
// GetOrInsert (row-level), rather than one implicit chained lookup.
func (idx *Index) GetOrInsert(nodeName string, ident interface{}) Record {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	bucket := idx.getOrInsertNodeLocked(nodeName)
	row, ok := bucket[ident]
	if !ok {
		row = make(Record)
		bucket[ident] = row
	}
	return row
}

// Set writes value under (nodeName, ident, key), auto-inserting the row if necessary. It is the
// primary write path used by resolver-completion callbacks.
func (idx *Index) Set(nodeName string, ident interface{}, key string, value interface{}) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	bucket := idx.getOrInsertNodeLocked(nodeName)
	row, ok := bucket[ident]
	if !ok {
		row = make(Record)
		bucket[ident] = row
	}
	row[key] = value
}

// SetRoot writes value under key in the root bucket.
func (idx *Index) SetRoot(key string, value interface{}) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.root[key] = value
}

// Finish freezes the Index. It is called exactly once, when the root TaskSet reports done; Proxy
// reads are only well-defined afterward.
func (idx *Index) Finish() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.frozen = true
}

// Frozen reports whether Finish has been called.
func (idx *Index) Frozen() bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.frozen
}

// LookupRoot resolves a field read against the root bucket. It is the Proxy.Field path for a
// Proxy positioned at ROOT.
func (idx *Index) LookupRoot(key string) (interface{}, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	v, ok := idx.root[key]
	return v, ok
}

// Lookup resolves a field read against the (nodeName, ident) row. It is the Proxy.Field path for
// a Proxy positioned at a Reference.
func (idx *Index) Lookup(nodeName string, ident interface{}, key string) (interface{}, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	bucket, ok := idx.nodes[nodeName]
	if !ok {
		return nil, false
	}
	row, ok := bucket[ident]
	if !ok {
		return nil, false
	}
	v, ok := row[key]
	return v, ok
}
