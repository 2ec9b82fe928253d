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

package graph

import (
	"github.com/okorienev/hiku/hikuctx"
	"github.com/okorienev/hiku/query"
	"github.com/okorienev/hiku/sched"
)

// ResolverKind replaces runtime reflection on resolver markers with an explicit tagged variant
// attached to each schema Field/Link at build time.
type ResolverKind int

const (
	// Plain resolvers receive only their declared arguments.
	Plain ResolverKind = iota
	// ContextAware resolvers receive the request Context as their first argument.
	ContextAware
	// Subquery resolvers enqueue their own work against the workflow's Queue/TaskSet instead of
	// returning rows directly.
	Subquery
)

// ResolverID is a stable handle assigned when the Graph is built, replacing callable-identity
// comparison (Go gives function values no meaningful equality). Two Fields that share a
// ResolverID share one *FieldResolver pointer, and the workflow batches such Fields into a single
// resolver invocation.
type ResolverID int

// FieldFunc is the plain field-resolver signature: fn(query_fields [, ids]) -> rows.
// ids is nil when the field group is resolved at Root.
type FieldFunc func(fields []*query.Field, ids []interface{}) (interface{}, error)

// ContextFieldFunc is FieldFunc with the request Context prepended.
type ContextFieldFunc func(ctx hikuctx.Context, fields []*query.Field, ids []interface{}) (interface{}, error)

// RowWriter is the narrow write capability a Subquery resolver needs to publish resolved values
// into the Index row(s) for the node it was called against. It is scoped to that node already, so
// callers only ever supply (ident, key, value) -- never a node name. Defined here rather than
// imported from idx so that graph, which describes schema shape only, never depends on the
// per-request Index; *idx.Index satisfies this interface structurally.
type RowWriter interface {
	Set(ident interface{}, key string, value interface{})
}

// SubqueryFieldFunc is the subquery-resolver signature: it is handed the Queue's
// current TaskSet and a RowWriter, and must register its own work and write its own results rather
// than return rows synchronously.
type SubqueryFieldFunc func(fields []*query.Field, ids []interface{}, q *sched.Queue, ts *sched.TaskSet, ctx hikuctx.Context, writer RowWriter) error

// FieldResolver is the identity a Field's callable is batched by. Construct one with
// NewFieldResolver/NewContextFieldResolver/NewSubqueryFieldResolver and share the same pointer
// across every Field that should be served by one resolver call.
type FieldResolver struct {
	id       ResolverID
	kind     ResolverKind
	plain    FieldFunc
	ctxAware ContextFieldFunc
	subquery SubqueryFieldFunc
}

// NewFieldResolver builds a Plain FieldResolver.
func NewFieldResolver(fn FieldFunc) *FieldResolver {
	return &FieldResolver{kind: Plain, plain: fn}
}

// NewContextFieldResolver builds a ContextAware FieldResolver.
func NewContextFieldResolver(fn ContextFieldFunc) *FieldResolver {
	return &FieldResolver{kind: ContextAware, ctxAware: fn}
}

// NewSubqueryFieldResolver builds a Subquery FieldResolver.
func NewSubqueryFieldResolver(fn SubqueryFieldFunc) *FieldResolver {
	return &FieldResolver{kind: Subquery, subquery: fn}
}

// Kind reports the resolver's descriptor variant.
func (r *FieldResolver) Kind() ResolverKind { return r.kind }

// ID returns the ResolverID assigned to this resolver when its owning Graph was built. It is
// zero (and meaningless) before the Graph is built.
func (r *FieldResolver) ID() ResolverID { return r.id }

// Call invokes the resolver according to its kind. It is only valid for Plain/ContextAware
// resolvers; Subquery resolvers are invoked through CallSubquery instead.
func (r *FieldResolver) Call(ctx hikuctx.Context, fields []*query.Field, ids []interface{}) (interface{}, error) {
	switch r.kind {
	case Plain:
		return r.plain(fields, ids)
	case ContextAware:
		return r.ctxAware(ctx, fields, ids)
	default:
		panic("graph: Call invoked on a Subquery resolver; use CallSubquery")
	}
}

// CallSubquery invokes a Subquery resolver.
func (r *FieldResolver) CallSubquery(fields []*query.Field, ids []interface{}, q *sched.Queue, ts *sched.TaskSet, ctx hikuctx.Context, writer RowWriter) error {
	if r.kind != Subquery {
		panic("graph: CallSubquery invoked on a non-Subquery resolver")
	}
	return r.subquery(fields, ids, q, ts, ctx, writer)
}

// LinkFunc is the plain link-resolver signature: fn([requires_values] [, options]) ->
// ids_or_references. requiresValues is nil when the link has no requires; options is empty
// (not nil) when the link declares none.
type LinkFunc func(requiresValues []interface{}, options query.Options) (interface{}, error)

// ContextLinkFunc is LinkFunc with the request Context prepended.
type ContextLinkFunc func(ctx hikuctx.Context, requiresValues []interface{}, options query.Options) (interface{}, error)

// LinkResolver is the identity a Link's callable is invoked through.
type LinkResolver struct {
	id       ResolverID
	kind     ResolverKind
	plain    LinkFunc
	ctxAware ContextLinkFunc
}

// NewLinkResolver builds a Plain LinkResolver.
func NewLinkResolver(fn LinkFunc) *LinkResolver {
	return &LinkResolver{kind: Plain, plain: fn}
}

// NewContextLinkResolver builds a ContextAware LinkResolver.
func NewContextLinkResolver(fn ContextLinkFunc) *LinkResolver {
	return &LinkResolver{kind: ContextAware, ctxAware: fn}
}

// Kind reports the resolver's descriptor variant.
func (r *LinkResolver) Kind() ResolverKind { return r.kind }

// ID returns the ResolverID assigned when the owning Graph was built.
func (r *LinkResolver) ID() ResolverID { return r.id }

// Call invokes the link resolver according to its kind.
func (r *LinkResolver) Call(ctx hikuctx.Context, requiresValues []interface{}, options query.Options) (interface{}, error) {
	switch r.kind {
	case ContextAware:
		return r.ctxAware(ctx, requiresValues, options)
	default:
		return r.plain(requiresValues, options)
	}
}
