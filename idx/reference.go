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

// Package idx is the per-request normalized result store: Index holds every resolved row keyed by
// (node name, id), Reference is the symbolic edge a Link resolves to, and TypenameKey names the
// polymorphic-type-name convention.
package idx

import "fmt"

// TypenameKey is the reserved index_key under which a node's resolved concrete type name is
// stored when a Link's target Node is polymorphic. Proxy surfaces it through the same field-read
// path as any other value; it is not a Reference.
const TypenameKey = "__typename"

// Reference is a symbolic pointer `(node_name, ident)` into an Index. Ident must be
// a comparable Go value -- the workflow validates this before constructing a Reference and fails
// with hikuerr.UnhashableIdent otherwise.
type Reference struct {
	NodeName string
	Ident    interface{}
}

// String renders the Reference for diagnostics/logging.
func (r Reference) String() string {
	return fmt.Sprintf("Reference(%s, %v)", r.NodeName, r.Ident)
}

// IsReference reports whether v is a Reference, so callers that hold an interface{} pulled out of
// the Index (Proxy.Field, a cache visitor) can branch without a type switch at every call site.
func IsReference(v interface{}) (Reference, bool) {
	ref, ok := v.(Reference)
	return ref, ok
}
