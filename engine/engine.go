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

// Package engine is the public entry point: Engine binds an Executor and an optional Cache once,
// then runs any number of queries against any Graph through Execute, or inspects how a query would
// be scheduled through Plan without resolving anything.
package engine

import (
	"github.com/okorienev/hiku/cache"
	"github.com/okorienev/hiku/graph"
	"github.com/okorienev/hiku/hikuctx"
	"github.com/okorienev/hiku/optioninit"
	"github.com/okorienev/hiku/proxy"
	"github.com/okorienev/hiku/query"
	"github.com/okorienev/hiku/sched"
	"github.com/okorienev/hiku/workflow"
)

// Engine runs queries against a Graph using one Executor and one optional Cache, both supplied
// once at construction and reused across every Execute/Plan call. It holds no per-request state.
type Engine struct {
	executor sched.Executor
	backend  cache.Cache
}

// New returns an Engine backed by executor. backend may be nil, disabling @cached link support
// for every query this Engine runs.
func New(executor sched.Executor, backend cache.Cache) *Engine {
	return &Engine{executor: executor, backend: backend}
}

// Execute validates node against g.Root, runs the workflow to completion, and returns a Proxy
// positioned at Root over the resulting Index. reqCtx is handed to every ContextAware/Subquery
// resolver the query reaches; pass hikuctx.New(nil) when a query needs none.
func (e *Engine) Execute(g *graph.Graph, node *query.Node, reqCtx hikuctx.Context) (*proxy.Proxy, error) {
	initialized, err := optioninit.Initialize(g, g.Root, node)
	if err != nil {
		return nil, err
	}
	index, err := workflow.Execute(g, initialized, e.executor, reqCtx, e.backend)
	if err != nil {
		return nil, err
	}
	return proxy.NewRoot(index, initialized), nil
}

// Plan validates node against g.Root the same way Execute does, then reports the schedule Execute
// would build at the top level -- which fields would be batched into a single resolver call, and
// which links would be descended into -- without submitting any resolver or touching a Cache. It
// does not recurse into link targets, and it always plans against g.Root; callers that need a
// link's own plan call workflow.Plan with the link's target schema Node (g.Node of the schema
// Link's NodeName), that node name, and the link's Node from the returned query.
func (e *Engine) Plan(g *graph.Graph, node *query.Node) (*query.Node, workflow.NodePlan, error) {
	initialized, err := optioninit.Initialize(g, g.Root, node)
	if err != nil {
		return nil, workflow.NodePlan{}, err
	}
	plan, err := workflow.Plan(g.Root, graph.RootNodeName, initialized)
	if err != nil {
		return nil, workflow.NodePlan{}, err
	}
	return initialized, plan, nil
}
