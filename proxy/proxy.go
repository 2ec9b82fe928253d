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

// Package proxy is the lazy, read-only view returned to callers: a Proxy wraps a frozen Index
// together with a position in it (Root, or a Reference) and a QueryNode describing which fields
// are in scope there.
package proxy

import (
	"fmt"

	"github.com/okorienev/hiku/idx"
	"github.com/okorienev/hiku/query"
)

// Proxy wraps (Index, Reference|ROOT, QueryNode). Reading a field maps its name to the QueryNode's
// declared index_key and either returns the stored scalar/record, or, if the stored value is an
// idx.Reference (or a slice of them), a new Proxy (or slice of Proxies) scoped to the link's
// target node.
type Proxy struct {
	index  *idx.Index
	ref    idx.Reference
	isRoot bool
	node   *query.Node
}

// NewRoot returns a Proxy positioned at Root, scoped to node.
func NewRoot(index *idx.Index, node *query.Node) *Proxy {
	return &Proxy{index: index, isRoot: true, node: node}
}

// newAt returns a Proxy positioned at ref, scoped to node.
func newAt(index *idx.Index, ref idx.Reference, node *query.Node) *Proxy {
	return &Proxy{index: index, ref: ref, node: node}
}

// IsRoot reports whether this Proxy is positioned at the query root.
func (p *Proxy) IsRoot() bool { return p.isRoot }

// Reference returns the Reference this Proxy is positioned at. It is meaningless when IsRoot is
// true.
func (p *Proxy) Reference() idx.Reference { return p.ref }

// FieldNames returns the names of fields and links readable through this Proxy, in the QueryNode's
// declared order.
func (p *Proxy) FieldNames() []string {
	names := make([]string, 0, len(p.node.Items))
	for _, item := range p.node.Items {
		if f, ok := item.(*query.Field); ok && f.Implicit {
			continue
		}
		names = append(names, item.ItemName())
	}
	return names
}

// Field resolves a single field or link by its query-level name, returning the stored value, a
// nested Proxy, a slice of Proxies, or nil, depending on the item's shape. ok is false when name
// does not name a declared item on this Proxy's QueryNode, or when the Index has no value stored
// for it (a resolver never ran down this branch).
func (p *Proxy) Field(name string) (interface{}, bool) {
	for _, item := range p.node.Items {
		if item.ItemName() != name {
			continue
		}
		switch it := item.(type) {
		case *query.Field:
			if it.Implicit {
				return nil, false
			}
			return p.lookup(it.IndexKey)
		case *query.Link:
			raw, ok := p.lookup(it.IndexKey)
			if !ok {
				return nil, false
			}
			return p.resolveLinkValue(raw, it), true
		default:
			return nil, false
		}
	}
	return nil, false
}

// lookup resolves key against this Proxy's position: the root bucket if IsRoot, otherwise the
// (node, ident) row named by its Reference.
func (p *Proxy) lookup(key string) (interface{}, bool) {
	if p.isRoot {
		return p.index.LookupRoot(key)
	}
	return p.index.Lookup(p.ref.NodeName, p.ref.Ident, key)
}

// resolveLinkValue turns a raw Index value stored under a Link's index_key into the caller-facing
// shape: nil stays nil, a single Reference becomes a Proxy, and a slice of References becomes a
// slice of Proxies (Many cardinality).
func (p *Proxy) resolveLinkValue(raw interface{}, link *query.Link) interface{} {
	if raw == nil {
		return nil
	}
	if ref, ok := idx.IsReference(raw); ok {
		return newAt(p.index, ref, link.Node)
	}
	if refs, ok := raw.([]idx.Reference); ok {
		out := make([]*Proxy, len(refs))
		for i, ref := range refs {
			out[i] = newAt(p.index, ref, link.Node)
		}
		return out
	}
	// Unexpected shape: surfaced as-is so callers see the raw value rather than a silent nil.
	return raw
}

// String renders the Proxy's position for diagnostics.
func (p *Proxy) String() string {
	if p.isRoot {
		return "Proxy(ROOT)"
	}
	return fmt.Sprintf("Proxy(%s)", p.ref)
}
