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

// buildError reports a schema construction failure (a misconfigured FieldConfig/LinkConfig, an
// unresolvable link target). It is distinct from the request-time hikuerr kinds: nothing about
// building a Graph happens per-request.
type buildError struct{ msg string }

func (e *buildError) Error() string { return "graph: " + e.msg }

// NodeConfig is the definition of a Node as supplied to Build.
type NodeConfig struct {
	Fields map[string]FieldConfig
	Links  map[string]LinkConfig
}

// Node is a named type carrying Fields and Links. The distinguished Root has an
// empty Name.
type Node struct {
	Name      string
	Fields    FieldMap
	Links     LinkMap
	fieldList []*Field
	linkList  []*Link
}

// Field looks up a Field by name.
func (n *Node) Field(name string) (*Field, bool) {
	f, ok := n.Fields[name]
	return f, ok
}

// Link looks up a Link by name.
func (n *Node) Link(name string) (*Link, bool) {
	l, ok := n.Links[name]
	return l, ok
}

func buildNode(name string, cfg NodeConfig) (*Node, error) {
	fields, err := buildFieldMap(cfg.Fields)
	if err != nil {
		return nil, err
	}
	links, err := buildLinkMap(cfg.Links)
	if err != nil {
		return nil, err
	}
	return &Node{Name: name, Fields: fields, Links: links}, nil
}
