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

// Package graph is the schema half of the engine: Node/Field/Link/Option describe the shape of a
// domain and how each member is resolved. A Graph is immutable once Build returns;
// Build's only job beyond validation is interning resolver identity into ResolverIDs, a
// comparable handle for each distinct resolver pointer, since Go gives funcs no equality.
package graph

// RootNodeName is the Node.Name of the schema node describing Root's fields/links. Root is held
// in Graph.Root, never in Graph.Nodes (Build rejects a named node with this name), and root-level
// reads go through the ROOT sentinel instead of an Index entry.
const RootNodeName = ""

// Graph is the built, immutable schema: a Root node plus every other declared Node, indexed by
// name. Construct one with Build; the zero value is not usable.
type Graph struct {
	Root  *Node
	Nodes map[string]*Node
}

// Node looks up a non-root Node by name.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.Nodes[name]
	return n, ok
}

// Build validates a Root NodeConfig plus a set of named NodeConfigs and assembles a Graph,
// assigning a ResolverID to every distinct *FieldResolver/*LinkResolver pointer reachable from it.
// Sharing one *FieldResolver pointer across multiple Fields is how a schema author opts those
// fields into single-call batching: the workflow groups a node's fields by that pointer. The
// ResolverID is the comparable form of the same identity; the workflow does not read it.
func Build(root NodeConfig, nodes map[string]NodeConfig) (*Graph, error) {
	rootNode, err := buildNode(RootNodeName, root)
	if err != nil {
		return nil, err
	}

	built := make(map[string]*Node, len(nodes))
	for name, cfg := range nodes {
		if name == RootNodeName {
			return nil, &buildError{msg: "node name must not be empty"}
		}
		n, err := buildNode(name, cfg)
		if err != nil {
			return nil, err
		}
		built[name] = n
	}

	g := &Graph{Root: rootNode, Nodes: built}
	if err := g.validateLinks(); err != nil {
		return nil, err
	}
	g.internResolverIDs()
	return g, nil
}

// validateLinks checks that every Link's NodeName refers to a declared Node and that Requires (if
// set) names an actual sibling Field.
func (g *Graph) validateLinks() error {
	allNodes := make([]*Node, 0, len(g.Nodes)+1)
	allNodes = append(allNodes, g.Root)
	for _, n := range g.Nodes {
		allNodes = append(allNodes, n)
	}
	for _, n := range allNodes {
		for linkName, link := range n.Links {
			if _, ok := g.Nodes[link.NodeName]; !ok {
				return &buildError{msg: "link " + n.Name + "." + linkName + ": unknown target node " + link.NodeName}
			}
			if link.Requires != "" {
				if _, ok := n.Fields[link.Requires]; !ok {
					return &buildError{msg: "link " + n.Name + "." + linkName + ": requires unknown field " + link.Requires}
				}
			}
		}
	}
	return nil
}

// internResolverIDs walks every Field/Link in the Graph and assigns a ResolverID to each distinct
// resolver pointer it encounters, in first-seen order starting at 1 (0 is reserved to mean
// "unassigned", which should never be observable once a Graph escapes Build).
func (g *Graph) internResolverIDs() {
	nextID := ResolverID(1)
	fieldSeen := make(map[*FieldResolver]ResolverID)
	linkSeen := make(map[*LinkResolver]ResolverID)

	intern := func(n *Node) {
		for _, f := range n.Fields {
			id, ok := fieldSeen[f.Resolver]
			if !ok {
				id = nextID
				nextID++
				fieldSeen[f.Resolver] = id
				f.Resolver.id = id
			}
		}
		for _, l := range n.Links {
			id, ok := linkSeen[l.Resolver]
			if !ok {
				id = nextID
				nextID++
				linkSeen[l.Resolver] = id
				l.Resolver.id = id
			}
		}
	}

	intern(g.Root)
	for _, n := range g.Nodes {
		intern(n)
	}
}
