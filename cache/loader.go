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
	"context"
	"errors"

	"github.com/okorienev/hiku/concurrent"
	"github.com/okorienev/hiku/concurrent/future"
	"github.com/okorienev/hiku/dataloader"
	"github.com/sirupsen/logrus"
)

var errNonStringKey = errors.New("cache loader: task key is not a string")

// Loader coalesces concurrent reads against a single Cache into batches, so that sibling @cached
// links discovered while processing one query node issue a single GetMany instead of one round
// trip per link. A Loader is scoped to one query execution. Its dataloader runs with
// dataloader.NoCacheMap, so it keeps no loaded values between calls: every key is read from the
// backend again unless it is still in flight within the same batch.
type Loader struct {
	backend Cache
	dl      *dataloader.DataLoader
}

// NewLoader returns a Loader reading through to backend. runner, if non-nil, is the executor used
// to run the batch loads it dispatches; passing nil runs each batch inline on the dispatching
// goroutine, which is the right choice when the caller already drives a sched.Executor of its own
// and doesn't want a second pool involved.
func NewLoader(backend Cache, runner concurrent.Executor) *Loader {
	l := &Loader{backend: backend}

	batchLoad := dataloader.BatchLoadFunc(func(ctx context.Context, tasks *dataloader.TaskList) {
		l.runBatch(ctx, tasks)
	})

	dl, err := dataloader.New(dataloader.Config{
		BatchLoader: batchLoad,
		Runner:      runner,
		// Cache is handled by backend; the dataloader's own CacheMap would hide misses across
		// distinct keys within one query, which we don't want -- every Get issues a real lookup
		// unless it's still in-flight within the same batch.
		CacheMap: dataloader.NoCacheMap,
	})
	if err != nil {
		// The only documented failure is a missing BatchLoader, which is always set above.
		panic(err)
	}
	l.dl = dl

	return l
}

func (l *Loader) runBatch(ctx context.Context, tasks *dataloader.TaskList) {
	var keys []string
	for it, end := tasks.Begin(), tasks.End(); it != end; it = it.Next() {
		key, ok := it.Key().(string)
		if !ok {
			if err := it.SetError(errNonStringKey); err != nil {
				logrus.WithError(err).Warn("cache loader: failed to report non-string key error to task")
			}
			continue
		}
		keys = append(keys, key)
	}

	values, err := l.backend.GetMany(ctx, keys)
	if err != nil {
		for it, end := tasks.Begin(), tasks.End(); it != end; it = it.Next() {
			if _, ok := it.Key().(string); !ok {
				continue
			}
			if completeErr := it.SetError(err); completeErr != nil {
				logrus.WithError(completeErr).Warn("cache loader: failed to propagate backend error to task")
			}
		}
		return
	}

	for it, end := tasks.Begin(), tasks.End(); it != end; it = it.Next() {
		key, ok := it.Key().(string)
		if !ok {
			continue
		}
		data, found := values[key]
		if !found {
			data = nil
		}
		if completeErr := it.Complete(data); completeErr != nil {
			logrus.WithError(completeErr).Warn("cache loader: failed to complete task with loaded value")
		}
	}
}

// Get reads a single key, batching it with any other Get/GetMany calls made before the next
// Dispatch point. It returns (nil, false, nil) on a cache miss.
func (l *Loader) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f, err := l.dl.Load(key)
	if err != nil {
		return nil, false, err
	}
	l.dl.Dispatch(ctx)

	result, err := future.Await(f)
	if err != nil {
		return nil, false, err
	}
	if result == nil {
		return nil, false, nil
	}
	data, _ := result.([]byte)
	return data, true, nil
}

// GetMany reads keys as a single batch. The returned map omits keys that missed in the cache.
func (l *Loader) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	if len(keys) == 0 {
		return map[string][]byte{}, nil
	}

	dlKeys := make([]dataloader.Key, len(keys))
	for i, key := range keys {
		dlKeys[i] = key
	}

	f, err := l.dl.LoadMany(dataloader.KeysFromArray(dlKeys...))
	if err != nil {
		return nil, err
	}
	l.dl.Dispatch(ctx)

	joined, err := future.Await(f)
	if err != nil {
		return nil, err
	}

	results, _ := joined.([]interface{})
	out := make(map[string][]byte, len(keys))
	for i, raw := range results {
		if raw == nil {
			continue
		}
		data, ok := raw.([]byte)
		if !ok || data == nil {
			continue
		}
		out[keys[i]] = data
	}
	return out, nil
}
