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

package sched

// Queue is the entry point a workflow drives one query execution through: it owns the root
// TaskSet and the Executor that runs every Submission scheduled against any TaskSet in the
// forest, at any depth.
type Queue struct {
	executor Executor
	root     *TaskSet
}

// NewQueue returns a Queue backed by executor, with a fresh root TaskSet.
func NewQueue(executor Executor) *Queue {
	return &Queue{executor: executor, root: NewTaskSet()}
}

// Root returns the Queue's root TaskSet, forked into per-node children as the workflow descends
// into links.
func (q *Queue) Root() *TaskSet { return q.root }

// Submit tracks one unit of work against ts and hands fn to the Queue's Executor. fn's error (if
// any) is recorded against ts when it completes; a panic inside fn is not recovered here, so it
// propagates on whatever goroutine the Executor runs fn.
func (q *Queue) Submit(ts *TaskSet, fn func() error) {
	ts.Track()
	q.executor.Submit(func() {
		ts.release(fn())
	})
}

// Run schedules the root of the query tree via schedule, then drains the Executor until every
// tracked Submission (at any depth of the TaskSet forest) has completed, returning the first
// error recorded anywhere in the forest, if any.
func (q *Queue) Run(schedule func(root *TaskSet)) error {
	schedule(q.root)
	q.root.Done()
	q.executor.Process()
	return q.root.Err()
}
