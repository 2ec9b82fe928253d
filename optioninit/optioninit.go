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

// Package optioninit implements the Option Initializer: it walks a client-supplied
// QueryNode against the schema Graph, fills in missing Option defaults, type-checks supplied
// values, recomputes each QueryField/QueryLink's index_key against the now-complete option set,
// and recurses into Link targets -- producing a new QueryNode tree without mutating the input.
package optioninit

import (
	"errors"
	"strconv"

	"github.com/okorienev/hiku/graph"
	"github.com/okorienev/hiku/hikuerr"
	"github.com/okorienev/hiku/query"
	"github.com/okorienev/hiku/sentinel"
)

var errMismatch = errors.New("optioninit: value does not match declared option type")

// Initialize walks node against schemaNode using g to resolve Link targets, and returns a new,
// fully-specified QueryNode. The input node is never mutated. Call with schemaNode = g.Root for
// the top-level query.
func Initialize(g *graph.Graph, schemaNode *graph.Node, node *query.Node) (*query.Node, error) {
	items := make([]query.Item, 0, len(node.Items))
	seen := make(map[string]bool, len(node.Items))
	for _, item := range node.Items {
		switch it := item.(type) {
		case *query.Field:
			initialized, err := initField(schemaNode, it)
			if err != nil {
				return nil, err
			}
			items = append(items, initialized)
			seen[initialized.Name] = true
		case *query.Link:
			initialized, err := initLink(g, schemaNode, it)
			if err != nil {
				return nil, err
			}
			items = append(items, initialized)
			seen[initialized.Name] = true
		}
	}

	// A Link's schema Requires names a sibling Field whose resolved value feeds the link resolver
	//. The client may never have selected that field itself; add it so the workflow
	// still resolves and stores it, marked Implicit so Proxy keeps it out of the caller-facing
	// result.
	for _, item := range items {
		link, ok := item.(*query.Link)
		if !ok {
			continue
		}
		schemaLink, ok := schemaNode.Link(link.Name)
		if !ok || schemaLink.Requires == "" || seen[schemaLink.Requires] {
			continue
		}
		implicit, err := initField(schemaNode, &query.Field{Name: schemaLink.Requires})
		if err != nil {
			return nil, err
		}
		implicit.Implicit = true
		items = append(items, implicit)
		seen[implicit.Name] = true
	}

	return &query.Node{Items: items, Ordered: node.Ordered}, nil
}

func initField(schemaNode *graph.Node, field *query.Field) (*query.Field, error) {
	schemaField, ok := schemaNode.Field(field.Name)
	if !ok {
		// Unknown field names are a validation concern outside the Initializer's scope; a missing
		// match is left for the workflow to surface as ResolverShape when it tries to resolve the
		// group.
		return field, nil
	}
	options, err := fillOptions(schemaNode.Name, field.Name, schemaField.Options, field.Options)
	if err != nil {
		return nil, err
	}
	return &query.Field{
		Name:     field.Name,
		Options:  options,
		IndexKey: query.IndexKey(field.Name, options),
	}, nil
}

func initLink(g *graph.Graph, schemaNode *graph.Node, link *query.Link) (*query.Link, error) {
	if schemaLink, ok := schemaNode.Link(link.Name); ok {
		options, err := fillOptions(schemaNode.Name, link.Name, schemaLink.Options, link.Options)
		if err != nil {
			return nil, err
		}
		nestedNode := link.Node
		if targetSchemaNode, ok := g.Node(schemaLink.NodeName); ok && link.Node != nil {
			nestedNode, err = Initialize(g, targetSchemaNode, link.Node)
			if err != nil {
				return nil, err
			}
		}
		return &query.Link{
			Name:       link.Name,
			Options:    options,
			IndexKey:   query.IndexKey(link.Name, options),
			Node:       nestedNode,
			Directives: link.Directives,
		}, nil
	}

	// "QueryLink pointing at a Field (a complex field)": the query author used link syntax (with a
	// nested selection set) for what the schema declares as a Field. Only options are filled;
	// recursion into a nested node stops here because there is no target Node to recurse into.
	if schemaField, ok := schemaNode.Field(link.Name); ok {
		options, err := fillOptions(schemaNode.Name, link.Name, schemaField.Options, link.Options)
		if err != nil {
			return nil, err
		}
		return &query.Link{
			Name:       link.Name,
			Options:    options,
			IndexKey:   query.IndexKey(link.Name, options),
			Node:       nil,
			Directives: link.Directives,
		}, nil
	}

	return link, nil
}

func fillOptions(nodeName, memberName string, declared []graph.Option, supplied query.Options) (query.Options, error) {
	out := make(query.Options, len(declared))
	for _, opt := range declared {
		value, present := supplied[opt.Name]
		if !present {
			if opt.Required() {
				return nil, &hikuerr.MissingRequiredOption{Node: nodeName, Field: memberName, Option: opt.Name}
			}
			value = opt.Default
		}
		coerced, err := coerce(opt, value)
		if err != nil {
			return nil, &hikuerr.OptionTypeMismatch{
				Node: nodeName, Field: memberName, Option: opt.Name,
				Expected: opt.Type.String(), Value: value,
			}
		}
		out[opt.Name] = coerced
	}
	return out, nil
}

// coerce checks (and for interchangeable numeric JSON shapes, converts) value against opt.Type.
func coerce(opt graph.Option, value interface{}) (interface{}, error) {
	if sentinel.IsNothing(value) {
		return value, nil
	}
	switch opt.Type {
	case graph.StringType:
		if _, ok := value.(string); !ok {
			return nil, errMismatch
		}
	case graph.IntType:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return v, nil
		case float64:
			if v == float64(int64(v)) {
				return int64(v), nil
			}
			return nil, errMismatch
		case string:
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, errMismatch
			}
			return n, nil
		default:
			return nil, errMismatch
		}
	case graph.FloatType:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		default:
			return nil, errMismatch
		}
	case graph.BoolType:
		if _, ok := value.(bool); !ok {
			return nil, errMismatch
		}
	}
	return value, nil
}
