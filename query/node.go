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

package query

// Item is either a *Field or a *Link; Node.Items preserves declaration order, which Proxy
// iteration and the workflow's Ordered scheduling both depend on.
type Item interface {
	// ItemName returns the field/link's name as it appeared in the query.
	ItemName() string

	isItem()
}

// Field is a client's selection of a schema Field.
type Field struct {
	Name     string
	Options  Options
	IndexKey string

	// Implicit is true for a Field the Option Initializer added on the client's behalf because a
	// sibling Link's schema Requires it, rather than one the client actually selected.
	// Proxy hides implicit fields from FieldNames/Field so they never leak into a caller-facing
	// result; the workflow still resolves and stores them like any other field.
	Implicit bool
}

var _ Item = (*Field)(nil)

// ItemName implements Item.
func (f *Field) ItemName() string { return f.Name }

func (*Field) isItem() {}

// Link is a client's selection of a schema Link, with its nested selection set.
type Link struct {
	Name       string
	Options    Options
	IndexKey   string
	Node       *Node
	Directives Directives
}

var _ Item = (*Link)(nil)

// ItemName implements Item.
func (l *Link) ItemName() string { return l.Name }

func (*Link) isItem() {}

// Node is an ordered selection set: a list of fields/links, plus a flag forcing sequential
// execution of siblings.
type Node struct {
	Items   []Item
	Ordered bool
}

// Fields returns the *Field items in Items, in order.
func (n *Node) Fields() []*Field {
	var out []*Field
	for _, it := range n.Items {
		if f, ok := it.(*Field); ok {
			out = append(out, f)
		}
	}
	return out
}

// Links returns the *Link items in Items, in order.
func (n *Node) Links() []*Link {
	var out []*Link
	for _, it := range n.Items {
		if l, ok := it.(*Link); ok {
			out = append(out, l)
		}
	}
	return out
}
