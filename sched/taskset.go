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

import "sync"

// TaskSet tracks the in-flight work belonging to one node in the query tree: a node's processing
// doesn't "finish" until every field group it scheduled and every link it descended into has
// finished. A TaskSet is a forest node: process_node forks a child TaskSet per link it recurses
// into, and a parent only reports done once all of its children have.
//
// The self-placeholder: a TaskSet starts with one implicit pending unit held by whoever created
// it, via Track, for the whole time it is still enumerating field groups/links to schedule. That
// placeholder is released with Done once scheduling for the node is complete. Without it, a
// TaskSet whose first field group happens to finish synchronously (completing this tick, on the
// submitting goroutine) would fire OnDone before the node finished scheduling its remaining links.
type TaskSet struct {
	mu      sync.Mutex
	pending int
	closed  bool
	err     error
	onDone  func(error)
	parent  *TaskSet
}

// NewTaskSet returns a root TaskSet with no parent. It starts with its self-placeholder already
// tracked; call Done once the caller has finished scheduling work into it.
func NewTaskSet() *TaskSet {
	ts := &TaskSet{}
	ts.pending = 1
	return ts
}

// Fork creates a child TaskSet representing a nested node (a link's target) and holds the parent
// open on the child's behalf: the parent will not report done until the child does. The child
// itself starts with its own self-placeholder tracked.
func (ts *TaskSet) Fork() *TaskSet {
	ts.Track()
	child := NewTaskSet()
	child.parent = ts
	return child
}

// Track registers one more unit of pending work. Every Track must be matched by exactly one
// release (directly, or transitively via a forked child's completion).
func (ts *TaskSet) Track() {
	ts.mu.Lock()
	ts.pending++
	ts.mu.Unlock()
}

// release reports one unit of pending work as finished. err, if non-nil, is recorded as the
// TaskSet's failure (first error wins, aborting the rest of the query) and propagated to the
// parent when this TaskSet completes.
func (ts *TaskSet) release(err error) {
	ts.mu.Lock()
	if err != nil && ts.err == nil {
		ts.err = err
	}
	ts.pending--
	fire := ts.pending == 0
	var (
		callback func(error)
		reportedErr error
		parent   *TaskSet
	)
	if fire {
		callback = ts.onDone
		reportedErr = ts.err
		parent = ts.parent
	}
	ts.mu.Unlock()

	if !fire {
		return
	}
	if callback != nil {
		callback(reportedErr)
	}
	if parent != nil {
		parent.release(reportedErr)
	}
}

// Fail records err against this TaskSet without otherwise changing its pending count, for
// reporting a failure that isn't naturally tied to a single Track/release pair (a validation error
// discovered while still enumerating a node's fields, for instance).
func (ts *TaskSet) Fail(err error) {
	if err == nil {
		return
	}
	ts.mu.Lock()
	if ts.err == nil {
		ts.err = err
	}
	ts.mu.Unlock()
}

// Done releases the self-placeholder tracked at construction/Fork time, signalling that this
// TaskSet has finished scheduling (though its tracked children may still be running).
func (ts *TaskSet) Done() {
	ts.release(nil)
}

// DoneWithError is Done but additionally records err as this TaskSet's failure.
func (ts *TaskSet) DoneWithError(err error) {
	ts.release(err)
}

// OnDone registers fn to run exactly once, when every tracked unit (including forked children) has
// completed. Registering after the TaskSet has already completed runs fn immediately. OnDone must
// not be called more than once per TaskSet.
func (ts *TaskSet) OnDone(fn func(error)) {
	ts.mu.Lock()
	if ts.pending == 0 {
		err := ts.err
		ts.mu.Unlock()
		fn(err)
		return
	}
	ts.onDone = fn
	ts.mu.Unlock()
}

// Err reports the first error recorded against this TaskSet, if any. Safe to call at any time.
func (ts *TaskSet) Err() error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.err
}
