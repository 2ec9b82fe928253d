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
)

// FieldPlan is one resolver call Execute would make for a node's fields: every field name batched
// into it, in first-seen order.
type FieldPlan struct {
	Fields []string
}

// NodePlan is the schedule Execute would build for one node, without running any resolver: which
// field groups would be called together, which links would be descended into, and the declared
// order scheduling would follow for Ordered nodes.
type NodePlan struct {
	FieldGroups []FieldPlan
	Links       []string
	Ordered     bool
}

// Plan computes the NodePlan for queryNode against schemaNode: the same grouping buildUnits would
// produce, without forking any TaskSet or invoking a resolver. Callers recurse into a link's own
// Plan by calling Plan again against the link's target schema Node and its Link.Node selection.
func Plan(schemaNode *graph.Node, nodeName string, queryNode *query.Node) (NodePlan, error) {
	groups, err := groupFields(schemaNode, nodeName, queryNode.Fields())
	if err != nil {
		return NodePlan{}, err
	}
	plan := NodePlan{
		FieldGroups: make([]FieldPlan, len(groups)),
		Ordered:     queryNode.Ordered,
	}
	for i, g := range groups {
		names := make([]string, len(g.fields))
		for j, f := range g.fields {
			names[j] = f.Name
		}
		plan.FieldGroups[i] = FieldPlan{Fields: names}
	}
	for _, l := range queryNode.Links() {
		plan.Links = append(plan.Links, l.Name)
	}
	return plan, nil
}
