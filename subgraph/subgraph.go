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

// Package subgraph lets one Node definition be reused as the resolver for fields on a different,
// higher-level Node describing the same entities -- a graph-to-graph link source, the Go analogue
// of the engine's node-reuse composition. Source funnels the outer field group's ids through a
// throwaway single-link Graph built around the bound NodeConfig and runs a complete nested
// workflow.Execute to resolve them, so the bound Node's own Fields, Requires fields and @cached
// directives behave as they do when that Node is queried directly. The nested Graph declares only
// the bound Node, so a Link of that Node whose target is any other Node makes the nested build
// fail with an "unknown target node" error.
package subgraph

import (
	"fmt"

	"github.com/okorienev/hiku/cache"
	"github.com/okorienev/hiku/engine/exec"
	"github.com/okorienev/hiku/graph"
	"github.com/okorienev/hiku/hikuctx"
	"github.com/okorienev/hiku/optioninit"
	"github.com/okorienev/hiku/query"
	"github.com/okorienev/hiku/sched"
	"github.com/okorienev/hiku/workflow"
)

// thisLinkName names the synthetic Root link a Source builds around its bound Node. It funnels
// the outer ids straight through to the bound Node with Many cardinality, mirroring the
// "link back to this" trick the same composition used in the engine this package generalizes.
const thisLinkName = "__subgraph_this"

// Source binds one Node's definition so it can serve as the FieldResolver for fields declared on
// some other Node describing the same entities. Construct one with New and share its Resolver
// across every field that should be routed through it; fields sharing a Resolver still batch into
// a single nested execution the way any other shared resolver batches into a single call.
type Source struct {
	nodeName   string
	nodeConfig graph.NodeConfig
	newExec    func() sched.Executor
	backend    cache.Cache

	// Resolver is the FieldResolver to assign to every FieldConfig that should be served out of
	// the bound Node. It is ContextAware: the request Context reaching the outer query is threaded
	// into the nested execution unchanged.
	Resolver *graph.FieldResolver
}

// New binds nodeName/nodeConfig as a Source. newExecutor builds a fresh Executor for each nested
// execution; pass nil to default to exec.NewCooperativeExecutor, which is enough for most bound
// Nodes. backend is the optional Cache the nested execution uses for @cached links declared on
// the bound Node; it may be nil.
//
// nodeConfig must be the same NodeConfig (sharing the same FieldConfig/LinkConfig Resolver
// pointers) used wherever else nodeName's Node is built, or the two builds will assign the shared
// resolvers different ResolverIDs and batch independently of each other.
func New(nodeName string, nodeConfig graph.NodeConfig, newExecutor func() sched.Executor, backend cache.Cache) (*Source, error) {
	if nodeName == graph.RootNodeName {
		return nil, fmt.Errorf("subgraph: nodeName must not be the root node")
	}
	if newExecutor == nil {
		newExecutor = func() sched.Executor { return exec.NewCooperativeExecutor() }
	}
	s := &Source{nodeName: nodeName, nodeConfig: nodeConfig, newExec: newExecutor, backend: backend}
	s.Resolver = graph.NewContextFieldResolver(s.resolve)
	return s, nil
}

// resolve is the Source's FieldFunc: it is only ever valid to attach Resolver to fields of a
// non-root Node, so ids is always the node-level batch Execute would otherwise have passed to any
// other resolver serving the same fields -- never the nil Root sentinel.
func (s *Source) resolve(ctx hikuctx.Context, fields []*query.Field, ids []interface{}) (interface{}, error) {
	selected := make([]query.Item, len(fields))
	for i, f := range fields {
		selected[i] = &query.Field{Name: f.Name, Options: f.Options}
	}

	passIDs := make([]interface{}, len(ids))
	copy(passIDs, ids)
	thisLink := graph.NewLinkResolver(func(requiresValues []interface{}, options query.Options) (interface{}, error) {
		return passIDs, nil
	})

	root, err := graph.Build(graph.NodeConfig{
		Links: map[string]graph.LinkConfig{
			thisLinkName: {NodeName: s.nodeName, Cardinality: graph.Many, Resolver: thisLink},
		},
	}, map[string]graph.NodeConfig{s.nodeName: s.nodeConfig})
	if err != nil {
		return nil, fmt.Errorf("subgraph: building nested graph for %q: %w", s.nodeName, err)
	}

	queryNode := &query.Node{Items: []query.Item{&query.Link{
		Name: thisLinkName, IndexKey: thisLinkName,
		Node: &query.Node{Items: selected},
	}}}

	initialized, err := optioninit.Initialize(root, root.Root, queryNode)
	if err != nil {
		return nil, err
	}
	index, err := workflow.Execute(root, initialized, s.newExec(), ctx, s.backend)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, len(ids))
	for i, id := range ids {
		row := make(map[string]interface{}, len(fields))
		for _, f := range fields {
			v, _ := index.Lookup(s.nodeName, id, f.IndexKey)
			row[f.Name] = v
		}
		rows[i] = row
	}
	return rows, nil
}
