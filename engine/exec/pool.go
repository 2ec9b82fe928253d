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

// Package exec supplies sched.Executor implementations: a bounded worker pool for production use
// (built on the kept concurrent.WorkerPoolExecutor), an errgroup-backed executor for unbounded
// fan-out with a soft concurrency cap, and a cooperative inline executor for tests.
package exec

import (
	"sync"

	"github.com/okorienev/hiku/concurrent"
	"github.com/okorienev/hiku/sched"
)

// PoolExecutor adapts a concurrent.WorkerPoolExecutor to sched.Executor. Every Submission is
// wrapped in a concurrent.TaskFunc; Process blocks until every Submission handed out since the
// last Process call has returned, using a WaitGroup rather than polling each TaskHandle.
type PoolExecutor struct {
	pool *concurrent.WorkerPoolExecutor
	wg   sync.WaitGroup
}

var _ sched.Executor = (*PoolExecutor)(nil)

// NewPoolExecutor builds a PoolExecutor backed by a WorkerPoolExecutor configured with config.
func NewPoolExecutor(config concurrent.WorkerPoolExecutorConfig) (*PoolExecutor, error) {
	pool, err := concurrent.NewWorkerPoolExecutor(config)
	if err != nil {
		return nil, err
	}
	return &PoolExecutor{pool: pool}, nil
}

// Submit implements sched.Executor.
func (e *PoolExecutor) Submit(fn sched.Submission) {
	e.wg.Add(1)
	// Submit errors (the pool shutting down, or config.MaxPoolSize exhausted in a way that
	// addTask/addWorker cannot recover from) surface as a resolver-shaped failure rather than a
	// panic: the Submission itself never runs, so release its WaitGroup slot directly.
	_, err := e.pool.Submit(concurrent.TaskFunc(func() (interface{}, error) {
		defer e.wg.Done()
		fn()
		return nil, nil
	}))
	if err != nil {
		e.wg.Done()
	}
}

// Process implements sched.Executor. It waits for every Submission passed to Submit so far to
// complete.
func (e *PoolExecutor) Process() {
	e.wg.Wait()
}

// Shutdown releases the underlying worker pool. Call it once the Queue that owns this Executor
// will not be reused.
func (e *PoolExecutor) Shutdown() (<-chan bool, error) {
	return e.pool.Shutdown()
}
