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
	"reflect"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/okorienev/hiku/cache"
	"github.com/okorienev/hiku/graph"
	"github.com/okorienev/hiku/hikuerr"
	"github.com/okorienev/hiku/idx"
	"github.com/okorienev/hiku/query"
	"github.com/okorienev/hiku/sched"
	"github.com/okorienev/hiku/sentinel"
)

// resolveLink is process_link: it calls the link's resolver once for the whole
// ids batch, normalizes and stores the per-id result according to the link's cardinality, then
// recurses into the target node for whichever idents weren't served out of cache. child is the
// TaskSet ts.Fork() produced for this link (schedule.go); resolveLink owns releasing its
// self-placeholder (via child.Done/DoneWithError) and therefore decides, through child.OnDone,
// exactly when next fires: only once the whole target subtree -- recursion and any best-effort
// cache write-back -- has actually finished, not merely once this function returns.
func resolveLink(qc *queryCtx, child *sched.TaskSet, schemaNode *graph.Node, nodeName string, ids []interface{}, link *query.Link, requiresKey string, next func()) {
	var writeBack struct {
		link     *query.Link
		nodeName string
		pending  []pendingWriteBack
	}
	child.OnDone(func(error) {
		if len(writeBack.pending) > 0 {
			cacheWriteBack(qc, writeBack.link, writeBack.nodeName, writeBack.pending)
		}
		next()
	})

	_, span := tracer.Start(context.Background(), spanLink)
	defer span.End()
	span.SetAttributes(
		attribute.String("hiku.node", nodeLabel(nodeName)),
		attribute.String("hiku.link", link.Name),
		attribute.Int("hiku.id_count", len(ids)),
	)

	schemaLink, ok := schemaNode.Link(link.Name)
	if !ok {
		err := &hikuerr.ResolverShape{
			Node: nodeLabel(nodeName), Field: link.Name,
			Expected: "a link declared on the schema node", Observed: "no matching link",
		}
		span.RecordError(err)
		child.DoneWithError(err)
		return
	}

	_, isCached := link.Directives.Cached()
	isRoot := nodeName == graph.RootNodeName
	if isCached && isRoot {
		err := &hikuerr.Unsupported{Reason: "@cached is not supported on root-level link " + link.Name}
		span.RecordError(err)
		child.DoneWithError(err)
		return
	}
	useCache := isCached && qc.loader != nil && qc.backend != nil

	var requiresValues []interface{}
	if schemaLink.Requires != "" {
		requiresValues = make([]interface{}, len(ids))
		for i, id := range ids {
			v, _ := qc.lookupField(nodeName, id, requiresKey)
			requiresValues[i] = v
		}
	}

	// Partition ids by their requires-value before calling the resolver: a cache key is a pure
	// function of (link, requires-value), so every id whose requires-value already has a cached
	// entry is replayed straight into the Index and never reaches the resolver at all.
	cacheKeys := make([]string, len(ids))
	resolveIdx := make([]int, 0, len(ids))
	if useCache {
		for i := range ids {
			var rv interface{}
			if requiresValues != nil {
				rv = requiresValues[i]
			}
			cacheKeys[i] = cache.QueryHash(link, rv)
		}
		hits, err := qc.loader.GetMany(context.Background(), cacheKeys)
		if err != nil {
			logrus.WithError(err).Warn("workflow: cache read failed for link, resolving all sources directly")
			for i := range ids {
				resolveIdx = append(resolveIdx, i)
			}
		} else {
			for i, id := range ids {
				data, ok := hits[cacheKeys[i]]
				if !ok {
					resolveIdx = append(resolveIdx, i)
					continue
				}
				if err := replayCachedLink(qc, link, nodeName, id, data); err != nil {
					logrus.WithError(err).Warn("workflow: cached link record was unreadable, resolving source directly")
					resolveIdx = append(resolveIdx, i)
				}
			}
		}
	} else {
		for i := range ids {
			resolveIdx = append(resolveIdx, i)
		}
	}
	span.SetAttributes(
		attribute.Int("hiku.cache_hits", len(ids)-len(resolveIdx)),
		attribute.Int("hiku.cache_misses", len(resolveIdx)),
	)

	targetNodeName := schemaLink.NodeName
	seen := make(map[interface{}]struct{}, len(ids))
	var targets []interface{}
	var pending []pendingWriteBack

	if len(resolveIdx) > 0 {
		subIDs := make([]interface{}, len(resolveIdx))
		var subRequires []interface{}
		if requiresValues != nil {
			subRequires = make([]interface{}, len(resolveIdx))
		}
		for j, i := range resolveIdx {
			subIDs[j] = ids[i]
			if subRequires != nil {
				subRequires[j] = requiresValues[i]
			}
		}

		raw, err := schemaLink.Resolver.Call(qc.reqCtx, subRequires, link.Options)
		if err != nil {
			span.RecordError(err)
			child.DoneWithError(err)
			return
		}

		perID, err := normalizeLinkResult(raw, len(subIDs), isRoot)
		if err != nil {
			wrapped := &hikuerr.ResolverShape{
				Node: nodeLabel(nodeName), Field: link.Name,
				Expected: "a per-id link result", Observed: fmt.Sprintf("%#v", raw), Hint: err.Error(),
			}
			span.RecordError(wrapped)
			child.DoneWithError(wrapped)
			return
		}

		for j, i := range resolveIdx {
			id := ids[i]
			storeValue, refs, err := materializeLinkValue(perID[j], schemaLink.Cardinality, nodeName, link.Name, targetNodeName)
			if err != nil {
				span.RecordError(err)
				child.DoneWithError(err)
				return
			}
			qc.write(nodeName, id, link.IndexKey, storeValue)
			for _, ref := range refs {
				if _, dup := seen[ref.Ident]; dup {
					continue
				}
				seen[ref.Ident] = struct{}{}
				targets = append(targets, ref.Ident)
			}
			if useCache {
				pending = append(pending, pendingWriteBack{id: id, key: cacheKeys[i]})
			}
		}
	}

	if len(targets) == 0 || link.Node == nil {
		if useCache && len(pending) > 0 {
			writeBack.link = link
			writeBack.nodeName = nodeName
			writeBack.pending = pending
		}
		child.Done()
		return
	}

	targetSchema, ok := qc.graph.Node(targetNodeName)
	if !ok {
		err := &hikuerr.ResolverShape{
			Node: targetNodeName, Field: link.Name,
			Expected: "a declared schema node", Observed: "unknown node " + targetNodeName,
		}
		span.RecordError(err)
		child.DoneWithError(err)
		return
	}

	if err := scheduleNode(qc, child, targetSchema, link.Node, targetNodeName, targets); err != nil {
		span.RecordError(err)
		child.DoneWithError(err)
		return
	}
	if useCache && len(pending) > 0 {
		writeBack.link = link
		writeBack.nodeName = nodeName
		writeBack.pending = pending
	}
	child.Done()
}

// normalizeLinkResult reshapes a link resolver's return value into one entry per id:
// at Root there is exactly one id and the raw value stands for it directly; elsewhere the resolver
// must return a slice with one entry per id, in order.
func normalizeLinkResult(raw interface{}, n int, isRoot bool) ([]interface{}, error) {
	if isRoot {
		return []interface{}{raw}, nil
	}
	items, ok := asIdentSlice(raw)
	if !ok {
		return nil, fmt.Errorf("expected a slice of %d per-id results, got %#v", n, raw)
	}
	if len(items) != n {
		return nil, fmt.Errorf("got %d results for %d ids", len(items), n)
	}
	return items, nil
}

// materializeLinkValue applies cardinality validation to one id's normalized resolver result,
// returning the value to store at the link's index_key (nil, a Reference, or a []idx.Reference)
// together with every Reference discovered, for the caller to fold into the batch recursion.
func materializeLinkValue(raw interface{}, cardinality graph.Cardinality, nodeName, linkName, targetNodeName string) (interface{}, []idx.Reference, error) {
	switch cardinality {
	case graph.Many:
		items, ok := asIdentSlice(raw)
		if !ok {
			return nil, nil, &hikuerr.ResolverShape{
				Node: nodeLabel(nodeName), Field: linkName,
				Expected: "a slice of idents (cardinality Many)", Observed: fmt.Sprintf("%#v", raw),
			}
		}
		refs := make([]idx.Reference, len(items))
		for i, ident := range items {
			ref, err := newReference(targetNodeName, ident, nodeName, linkName)
			if err != nil {
				return nil, nil, err
			}
			refs[i] = ref
		}
		return refs, refs, nil

	case graph.One:
		if isAbsent(raw) {
			return nil, nil, &hikuerr.NullNonOptional{Node: nodeLabel(nodeName), Link: linkName}
		}
		ref, err := newReference(targetNodeName, raw, nodeName, linkName)
		if err != nil {
			return nil, nil, err
		}
		return ref, []idx.Reference{ref}, nil

	default: // graph.Maybe
		if isAbsent(raw) {
			return nil, nil, nil
		}
		ref, err := newReference(targetNodeName, raw, nodeName, linkName)
		if err != nil {
			return nil, nil, err
		}
		return ref, []idx.Reference{ref}, nil
	}
}

func isAbsent(v interface{}) bool {
	return v == nil || sentinel.IsNothing(v)
}

// newReference builds a Reference after checking ident is a legal Index map key: Go map keys must
// be comparable, and reflect is the only way to check that for an arbitrary interface{} at
// runtime.
func newReference(targetNodeName string, ident interface{}, nodeName, linkName string) (idx.Reference, error) {
	if ident == nil {
		return idx.Reference{}, &hikuerr.UnhashableIdent{Node: nodeLabel(nodeName), Link: linkName, Value: ident}
	}
	if !reflect.TypeOf(ident).Comparable() {
		return idx.Reference{}, &hikuerr.UnhashableIdent{Node: nodeLabel(nodeName), Link: linkName, Value: ident}
	}
	return idx.Reference{NodeName: targetNodeName, Ident: ident}, nil
}

func asIdentSlice(raw interface{}) ([]interface{}, bool) {
	if items, ok := raw.([]interface{}); ok {
		return items, true
	}
	v := reflect.ValueOf(raw)
	if !v.IsValid() || v.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]interface{}, v.Len())
	for i := 0; i < v.Len(); i++ {
		out[i] = v.Index(i).Interface()
	}
	return out, true
}

// pendingWriteBack is one source id awaiting a best-effort cache write once its link's target
// subtree has finished resolving, keyed by the cache key already computed from its requires-value.
type pendingWriteBack struct {
	id  interface{}
	key string
}

// linkRecordNode wraps a single *query.Link in a throwaway *query.Node so cache.Serialize and
// cache.UpdateIndex -- built to walk a node's whole item list -- can be reused to (de)serialize one
// link's resolved value (and, when link.Node != nil, the target subtree it points at) in isolation.
func linkRecordNode(link *query.Link) *query.Node {
	return &query.Node{Items: []query.Item{link}}
}

// replayCachedLink restores a cache hit keyed by a source id's requires-value: it decodes the
// Record previously produced by cacheWriteBack and replays it at (nodeName, id, link.IndexKey),
// recursively restoring the target subtree the link points to, without ever calling the link
// resolver.
func replayCachedLink(qc *queryCtx, link *query.Link, nodeName string, id interface{}, data []byte) error {
	rec, err := cache.UnmarshalRecord(data)
	if err != nil {
		return err
	}
	return cache.UpdateIndex(qc.index, nodeName, id, rec)
}

// cacheWriteBack serializes each freshly-resolved source id's link value (and, once scheduleNode
// has finished, the target subtree beneath it) and stores it under the key already derived from
// that id's requires-value, best-effort: a marshal or backend failure is logged and otherwise
// ignored, never propagated to the query that triggered it.
func cacheWriteBack(qc *queryCtx, link *query.Link, nodeName string, pending []pendingWriteBack) {
	cachedDir, ok := link.Directives.Cached()
	if !ok {
		return
	}
	ttl := time.Duration(cachedDir.TTL) * time.Second
	wrapper := linkRecordNode(link)

	items := make(map[string][]byte, len(pending))
	for _, p := range pending {
		rec, err := cache.Serialize(qc.index, wrapper, nodeName, p.id)
		if err != nil {
			logrus.WithError(err).Warn("workflow: failed to serialize resolved link for caching")
			continue
		}
		data, err := cache.MarshalRecord(rec)
		if err != nil {
			logrus.WithError(err).Warn("workflow: failed to marshal cached record")
			continue
		}
		items[p.key] = data
	}
	if len(items) == 0 {
		return
	}
	if err := qc.backend.SetMany(context.Background(), items, ttl); err != nil {
		logrus.WithError(err).Warn("workflow: best-effort cache write failed")
	}
}
