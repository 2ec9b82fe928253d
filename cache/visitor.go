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

package cache

import (
	"github.com/okorienev/hiku/hikuerr"
	"github.com/okorienev/hiku/idx"
	"github.com/okorienev/hiku/query"
)

// Record is the wire shape of one cached node: index_key -> value, with two reserved keys
// (refKey, fieldNameKey) marking it as standing in for a Reference.
type Record map[string]interface{}

const (
	refKey       = "__ref__"
	fieldNameKey = "__field_name__"
)

// Serialize walks the Index subtree reachable from (nodeName, ident) through node's declared
// items and produces a Record suitable for Cache.SetMany, retaining unresolved References (not
// their targets' values) at link boundaries until UpdateIndex replays them.
func Serialize(index *idx.Index, node *query.Node, nodeName string, ident interface{}) (Record, error) {
	rec := make(Record, len(node.Items))
	for _, item := range node.Items {
		switch it := item.(type) {
		case *query.Field:
			if v, ok := index.Lookup(nodeName, ident, it.IndexKey); ok {
				rec[it.IndexKey] = v
			}
		case *query.Link:
			v, ok := index.Lookup(nodeName, ident, it.IndexKey)
			if !ok {
				continue
			}
			serialized, err := serializeLinkValue(index, it, v)
			if err != nil {
				return nil, err
			}
			rec[it.IndexKey] = serialized
		}
	}
	return rec, nil
}

func serializeLinkValue(index *idx.Index, link *query.Link, raw interface{}) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	if ref, ok := idx.IsReference(raw); ok {
		return serializeRef(index, link, ref)
	}
	if refs, ok := raw.([]idx.Reference); ok {
		out := make([]Record, len(refs))
		for i, ref := range refs {
			rec, err := serializeRef(index, link, ref)
			if err != nil {
				return nil, err
			}
			out[i] = rec
		}
		return out, nil
	}
	return raw, nil
}

func serializeRef(index *idx.Index, link *query.Link, ref idx.Reference) (Record, error) {
	var rec Record
	var err error
	if link.Node != nil {
		rec, err = Serialize(index, link.Node, ref.NodeName, ref.Ident)
		if err != nil {
			return nil, err
		}
	} else {
		rec = make(Record)
	}
	rec[refKey] = []interface{}{ref.NodeName, ref.Ident}
	rec[fieldNameKey] = ref.NodeName
	return rec, nil
}

// UpdateIndex replays a cached Record for (nodeName, ident) into index, recursively reconstructing
// any nested References it finds along the way. Calling it for the root bucket is refused:
// root-level caching errors out rather than silently no-opping.
func UpdateIndex(index *idx.Index, nodeName string, ident interface{}, payload Record) error {
	if nodeName == "" {
		return &hikuerr.Unsupported{Reason: "root-level caching is not supported"}
	}
	for key, v := range payload {
		if key == refKey || key == fieldNameKey {
			continue
		}
		switch vv := v.(type) {
		case Record:
			if err := writeNestedRecord(index, nodeName, ident, key, vv); err != nil {
				return err
			}
		case map[string]interface{}:
			if err := writeNestedRecord(index, nodeName, ident, key, Record(vv)); err != nil {
				return err
			}
		case []Record:
			refs, err := writeNestedRecords(index, vv)
			if err != nil {
				return err
			}
			index.Set(nodeName, ident, key, refs)
		case []interface{}:
			refs, err := writeNestedInterfaceRecords(index, vv)
			if err != nil {
				return err
			}
			index.Set(nodeName, ident, key, refs)
		default:
			index.Set(nodeName, ident, key, v)
		}
	}
	return nil
}

func writeNestedRecord(index *idx.Index, nodeName string, ident interface{}, key string, nested Record) error {
	refTuple, ok := nested[refKey]
	if !ok {
		// Not a Reference-shaped record: store as an opaque nested value (a plain record field).
		index.Set(nodeName, ident, key, map[string]interface{}(nested))
		return nil
	}
	refNodeName, refIdent, err := parseRefTuple(refTuple)
	if err != nil {
		return err
	}
	index.Set(nodeName, ident, key, idx.Reference{NodeName: refNodeName, Ident: refIdent})
	return UpdateIndex(index, refNodeName, refIdent, nested)
}

func writeNestedRecords(index *idx.Index, items []Record) ([]idx.Reference, error) {
	refs := make([]idx.Reference, 0, len(items))
	for _, nested := range items {
		refTuple, ok := nested[refKey]
		if !ok {
			continue
		}
		refNodeName, refIdent, err := parseRefTuple(refTuple)
		if err != nil {
			return nil, err
		}
		if err := UpdateIndex(index, refNodeName, refIdent, nested); err != nil {
			return nil, err
		}
		refs = append(refs, idx.Reference{NodeName: refNodeName, Ident: refIdent})
	}
	return refs, nil
}

// writeNestedInterfaceRecords handles the shape a Record takes after a JSON round-trip through a
// byte-oriented Cache backend (redis, an on-disk LRU persisted as bytes): nested objects decode as
// map[string]interface{}, not Record.
func writeNestedInterfaceRecords(index *idx.Index, items []interface{}) ([]idx.Reference, error) {
	refs := make([]idx.Reference, 0, len(items))
	for _, raw := range items {
		m, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		nested := Record(m)
		refTuple, ok := nested[refKey]
		if !ok {
			continue
		}
		refNodeName, refIdent, err := parseRefTuple(refTuple)
		if err != nil {
			return nil, err
		}
		if err := UpdateIndex(index, refNodeName, refIdent, nested); err != nil {
			return nil, err
		}
		refs = append(refs, idx.Reference{NodeName: refNodeName, Ident: refIdent})
	}
	return refs, nil
}

func parseRefTuple(v interface{}) (nodeName string, ident interface{}, err error) {
	tuple, ok := v.([]interface{})
	if !ok || len(tuple) != 2 {
		return "", nil, &hikuerr.Unsupported{Reason: "malformed cached __ref__ tuple"}
	}
	name, ok := tuple[0].(string)
	if !ok {
		return "", nil, &hikuerr.Unsupported{Reason: "malformed cached __ref__ node name"}
	}
	return name, tuple[1], nil
}
