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
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/okorienev/hiku/graph"
	"github.com/okorienev/hiku/hikuerr"
	"github.com/okorienev/hiku/query"
	"github.com/okorienev/hiku/sched"
)

// fieldGroup is every sibling *query.Field that shares one *graph.FieldResolver: they must be
// served by a single resolver call regardless of how many fields selected it.
type fieldGroup struct {
	resolver *graph.FieldResolver
	fields   []*query.Field
}

// groupFields partitions fields by the schema resolver each one's name maps to on schemaNode, in
// first-seen order. A field name with no matching schema Field is a ResolverShape failure: the
// Option Initializer deliberately leaves unknown names in place (optioninit.go) for this package
// to surface as a single, consistent error kind.
func groupFields(schemaNode *graph.Node, nodeName string, fields []*query.Field) ([]fieldGroup, error) {
	order := make([]*graph.FieldResolver, 0, len(fields))
	byResolver := make(map[*graph.FieldResolver][]*query.Field, len(fields))
	for _, f := range fields {
		schemaField, ok := schemaNode.Field(f.Name)
		if !ok {
			return nil, &hikuerr.ResolverShape{
				Node: nodeLabel(nodeName), Field: f.Name,
				Expected: "a field declared on the schema node", Observed: "no matching field",
			}
		}
		if _, seen := byResolver[schemaField.Resolver]; !seen {
			order = append(order, schemaField.Resolver)
		}
		byResolver[schemaField.Resolver] = append(byResolver[schemaField.Resolver], f)
	}
	groups := make([]fieldGroup, len(order))
	for i, r := range order {
		groups[i] = fieldGroup{resolver: r, fields: byResolver[r]}
	}
	return groups, nil
}

// resolveFieldGroup invokes group's resolver once for every id in ids (or once, unqualified, at
// Root) and writes the resulting row(s) into the Index. ts is the TaskSet a Subquery resolver's
// own scheduled work is tracked under -- the node currently being processed, not a forked child,
// since a subquery still belongs to this node's scope.
func resolveFieldGroup(qc *queryCtx, ts *sched.TaskSet, schemaNode *graph.Node, nodeName string, ids []interface{}, group fieldGroup) error {
	_, span := tracer.Start(context.Background(), spanFieldGroup)
	defer span.End()
	span.SetAttributes(
		attribute.String("hiku.node", nodeLabel(nodeName)),
		attribute.Int("hiku.field_count", len(group.fields)),
		attribute.Int("hiku.id_count", len(ids)),
	)

	isRoot := nodeName == graph.RootNodeName
	var idsArg []interface{}
	if !isRoot {
		idsArg = ids
	}

	if group.resolver.Kind() == graph.Subquery {
		writer := scopedWriter{qc: qc, nodeName: nodeName}
		if err := group.resolver.CallSubquery(group.fields, idsArg, qc.queue, ts, qc.reqCtx, writer); err != nil {
			span.RecordError(err)
			return err
		}
		return nil
	}

	raw, err := group.resolver.Call(qc.reqCtx, group.fields, idsArg)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := writeFieldRows(qc, nodeName, ids, group.fields, raw); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// writeFieldRows validates and stores a resolver's return value: at Root, a single
// row (map[string]interface{} keyed by field name); at node level, a slice of rows, one per id, in
// the same order as ids.
func writeFieldRows(qc *queryCtx, nodeName string, ids []interface{}, fields []*query.Field, raw interface{}) error {
	if nodeName == graph.RootNodeName {
		row, ok := asRow(raw)
		if !ok {
			return shapeErr(nodeName, fields, "a single row (map[string]interface{})", raw, "")
		}
		return writeRow(qc, nodeName, ids[0], fields, row)
	}

	rows, ok := asRows(raw)
	if !ok {
		return shapeErr(nodeName, fields, "a slice of rows, one per id", raw, "")
	}
	if len(rows) != len(ids) {
		return shapeErr(nodeName, fields, "a slice of rows, one per id", raw,
			fmt.Sprintf("got %d rows for %d ids", len(rows), len(ids)))
	}
	for i, id := range ids {
		if err := writeRow(qc, nodeName, id, fields, rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(qc *queryCtx, nodeName string, id interface{}, fields []*query.Field, row map[string]interface{}) error {
	for _, f := range fields {
		v, ok := row[f.Name]
		if !ok {
			return shapeErr(nodeName, []*query.Field{f}, "a value for every requested field", row,
				"row is missing key "+f.Name)
		}
		qc.write(nodeName, id, f.IndexKey, v)
	}
	return nil
}

func asRow(raw interface{}) (map[string]interface{}, bool) {
	row, ok := raw.(map[string]interface{})
	return row, ok
}

func asRows(raw interface{}) ([]map[string]interface{}, bool) {
	if rows, ok := raw.([]map[string]interface{}); ok {
		return rows, true
	}
	generic, ok := raw.([]interface{})
	if !ok {
		return nil, false
	}
	rows := make([]map[string]interface{}, len(generic))
	for i, g := range generic {
		row, ok := g.(map[string]interface{})
		if !ok {
			return nil, false
		}
		rows[i] = row
	}
	return rows, true
}

func shapeErr(nodeName string, fields []*query.Field, expected string, observed interface{}, hint string) *hikuerr.ResolverShape {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return &hikuerr.ResolverShape{
		Node:     nodeLabel(nodeName),
		Field:    strings.Join(names, ","),
		Expected: expected,
		Observed: fmt.Sprintf("%#v", observed),
		Hint:     hint,
	}
}
