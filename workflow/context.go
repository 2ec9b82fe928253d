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

package workflow

import (
	"go.opentelemetry.io/otel"

	"github.com/okorienev/hiku/cache"
	"github.com/okorienev/hiku/graph"
	"github.com/okorienev/hiku/hikuctx"
	"github.com/okorienev/hiku/idx"
	"github.com/okorienev/hiku/sched"
	"github.com/okorienev/hiku/sentinel"
)

var tracer = otel.Tracer("github.com/okorienev/hiku/workflow")

// queryCtx is the state shared by every step of one Execute call: the schema being queried, the
// Index every resolver writes into, the Queue driving concurrency, the request-scoped Context
// handed to ContextAware/Subquery resolvers, and the optional cache wiring for @cached links.
// It is never copied; every helper in this package takes a *queryCtx.
type queryCtx struct {
	graph  *graph.Graph
	queue  *sched.Queue
	index  *idx.Index
	reqCtx hikuctx.Context

	// loader batches concurrent cache reads discovered while processing sibling @cached links.
	// Both are nil when Execute was called without a cache.Cache.
	loader  *cache.Loader
	backend cache.Cache
}

// write stores value under (nodeName, id, key), routing to the Index's root bucket when id is the
// ROOT sentinel so Root needs no special case anywhere else in this package (doc.go).
func (qc *queryCtx) write(nodeName string, id interface{}, key string, value interface{}) {
	if id == sentinel.ROOT {
		qc.index.SetRoot(key, value)
		return
	}
	qc.index.Set(nodeName, id, key, value)
}

// lookupField reads back a value stored by write, for the by-reference Requires lookup described
// in query/node.go's Implicit doc comment.
func (qc *queryCtx) lookupField(nodeName string, id interface{}, key string) (interface{}, bool) {
	if id == sentinel.ROOT {
		return qc.index.LookupRoot(key)
	}
	return qc.index.Lookup(nodeName, id, key)
}

// scopedWriter adapts a queryCtx, fixed to one node name, to graph.RowWriter -- the capability a
// Subquery resolver is handed so it can publish rows without the graph package importing idx
// (graph/resolver.go).
type scopedWriter struct {
	qc       *queryCtx
	nodeName string
}

var _ graph.RowWriter = scopedWriter{}

// Set implements graph.RowWriter.
func (w scopedWriter) Set(ident interface{}, key string, value interface{}) {
	w.qc.write(w.nodeName, ident, key, value)
}

// nodeLabel renders a schema node name for error messages, substituting a readable marker for
// Root's empty name.
func nodeLabel(nodeName string) string {
	if nodeName == graph.RootNodeName {
		return "ROOT"
	}
	return nodeName
}

// Span names used by this package's otel instrumentation, namespaced so a host mixing hiku spans
// with its own tracing can filter on the "hiku." prefix.
const (
	spanFieldGroup = "hiku.resolve_field_group"
	spanLink       = "hiku.resolve_link"
)
