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
	"github.com/okorienev/hiku/cache"
	"github.com/okorienev/hiku/graph"
	"github.com/okorienev/hiku/hikuctx"
	"github.com/okorienev/hiku/idx"
	"github.com/okorienev/hiku/query"
	"github.com/okorienev/hiku/sched"
	"github.com/okorienev/hiku/sentinel"
)

// Execute drives queryNode (already run through optioninit.Initialize against g) to completion: it
// builds a fresh Index and Queue, schedules process_node starting at Root, blocks on executor until
// every field group and link in the tree has settled, and freezes the Index before returning it
//. The returned Index is only ever non-nil; a non-nil error means some
// resolver in the tree failed; whatever the Index has collected up to that failure is still
// populated, at the caller's discretion to inspect or discard.
//
// backend may be nil, disabling @cached link support entirely: a query that declares @cached on a
// non-root link against a nil backend behaves exactly as if no cache were configured -- the link is
// always resolved live. Fail-fast for @cached on a root-level link still applies regardless.
func Execute(g *graph.Graph, queryNode *query.Node, executor sched.Executor, reqCtx hikuctx.Context, backend cache.Cache) (*idx.Index, error) {
	index := idx.New()
	queue := sched.NewQueue(executor)

	qc := &queryCtx{graph: g, queue: queue, index: index, reqCtx: reqCtx}
	if backend != nil {
		qc.backend = backend
		qc.loader = cache.NewLoader(backend, nil)
	}

	err := queue.Run(func(root *sched.TaskSet) {
		if schedErr := scheduleNode(qc, root, g.Root, queryNode, graph.RootNodeName, []interface{}{sentinel.ROOT}); schedErr != nil {
			root.Fail(schedErr)
		}
	})
	index.Finish()
	return index, err
}
