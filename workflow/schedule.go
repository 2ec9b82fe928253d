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
	"github.com/okorienev/hiku/graph"
	"github.com/okorienev/hiku/query"
	"github.com/okorienev/hiku/sched"
)

// schedUnit is one schedulable piece of a node's processing: either a fieldGroup call or a single
// link's resolution (which recurses into its own subtree). schedule hands the unit to qc.queue and
// invokes next once the unit -- and, for a link, everything under it -- has completed; in the
// unordered case (the common one) every unit is scheduled with a no-op next so they all run
// concurrently, and in the Ordered case next chains to the following
// unit so siblings run one at a time, in declared order.
type schedUnit interface {
	schedule(qc *queryCtx, ts *sched.TaskSet, next func())
}

type fieldGroupUnit struct {
	schemaNode *graph.Node
	nodeName   string
	ids        []interface{}
	group      fieldGroup
}

func (u fieldGroupUnit) schedule(qc *queryCtx, ts *sched.TaskSet, next func()) {
	qc.queue.Submit(ts, func() error {
		err := resolveFieldGroup(qc, ts, u.schemaNode, u.nodeName, u.ids, u.group)
		next()
		return err
	})
}

type linkUnit struct {
	schemaNode  *graph.Node
	nodeName    string
	ids         []interface{}
	link        *query.Link
	requiresKey string
}

// schedule forks a child TaskSet scoped to this link's target subtree and hands resolution to
// resolveLink, which owns releasing the child's self-placeholder and therefore decides exactly
// when next fires -- only once the whole subtree (recursion and any cache write-back) is done, not
// merely once the link resolver call itself returns.
func (u linkUnit) schedule(qc *queryCtx, ts *sched.TaskSet, next func()) {
	child := ts.Fork()
	qc.queue.Submit(child, func() error {
		resolveLink(qc, child, u.schemaNode, u.nodeName, u.ids, u.link, u.requiresKey, next)
		return nil
	})
}

// buildUnits lays out schemaNode/queryNode's field groups and links as schedUnits, ordered by each
// unit's first appearance in queryNode.Items so Ordered scheduling replays the query's declared
// order even though fields sharing a resolver are batched across the whole node -- Proxy iteration
// follows the QueryNode's declared field order.
func buildUnits(schemaNode *graph.Node, nodeName string, ids []interface{}, queryNode *query.Node, groups []fieldGroup) []schedUnit {
	pos := make(map[query.Item]int, len(queryNode.Items))
	for i, it := range queryNode.Items {
		pos[it] = i
	}

	units := make([]schedUnit, 0, len(groups)+len(queryNode.Links()))
	unitPos := make([]int, 0, cap(units))

	for _, g := range groups {
		units = append(units, fieldGroupUnit{schemaNode: schemaNode, nodeName: nodeName, ids: ids, group: g})
		unitPos = append(unitPos, pos[g.fields[0]])
	}
	for _, l := range queryNode.Links() {
		units = append(units, linkUnit{
			schemaNode:  schemaNode,
			nodeName:    nodeName,
			ids:         ids,
			link:        l,
			requiresKey: requiresIndexKey(schemaNode, queryNode, l),
		})
		unitPos = append(unitPos, pos[l])
	}

	// Insertion sort: the unit count per node is small (a handful of fields/links), and this keeps
	// buildUnits free of an extra sort.Interface implementation for two parallel slices.
	for i := 1; i < len(units); i++ {
		for j := i; j > 0 && unitPos[j] < unitPos[j-1]; j-- {
			units[j], units[j-1] = units[j-1], units[j]
			unitPos[j], unitPos[j-1] = unitPos[j-1], unitPos[j]
		}
	}
	return units
}

// requiresIndexKey finds the index_key actually assigned to the sibling Field that schemaNode's
// link l depends on (graph.Link.Requires), reading it back from queryNode's real items rather than
// recomputing a bare-name key -- the field may carry options of its own, or have been added as an
// Implicit field by the Option Initializer (query/node.go, optioninit/optioninit.go), either of
// which changes its index_key.
func requiresIndexKey(schemaNode *graph.Node, queryNode *query.Node, l *query.Link) string {
	schemaLink, ok := schemaNode.Link(l.Name)
	if !ok || schemaLink.Requires == "" {
		return ""
	}
	for _, f := range queryNode.Fields() {
		if f.Name == schemaLink.Requires {
			return f.IndexKey
		}
	}
	return ""
}

// scheduleChain runs units[i], then -- once it (and its subtree, for a link) has completed --
// schedules units[i+1]. It implements Node.Ordered.
func scheduleChain(qc *queryCtx, ts *sched.TaskSet, units []schedUnit, i int) {
	if i >= len(units) {
		return
	}
	units[i].schedule(qc, ts, func() { scheduleChain(qc, ts, units, i+1) })
}

// scheduleNode lays out and schedules every field group and link of queryNode against ts, without
// touching ts's own pending count: callers own calling ts.Done()/ts.DoneWithError() once scheduling
// (not resolution) has finished, matching the self-placeholder convention documented on
// sched.TaskSet. It is the one piece of process_node shared by Root and every
// Link target.
func scheduleNode(qc *queryCtx, ts *sched.TaskSet, schemaNode *graph.Node, queryNode *query.Node, nodeName string, ids []interface{}) error {
	groups, err := groupFields(schemaNode, nodeName, queryNode.Fields())
	if err != nil {
		return err
	}
	units := buildUnits(schemaNode, nodeName, ids, queryNode, groups)

	if queryNode.Ordered {
		scheduleChain(qc, ts, units, 0)
		return nil
	}
	noop := func() {}
	for _, u := range units {
		u.schedule(qc, ts, noop)
	}
	return nil
}
