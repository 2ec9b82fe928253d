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

// Package sched drives a single query's execution: Queue submits units of work (field-group
// resolutions, link resolutions, nested subqueries) to an Executor and uses a forest of TaskSets
// to know when a branch -- or the whole query -- has finished.
//
// This trades TaskHandle/AwaitResult polling for a completion-callback style: a workflow doesn't
// poll for a field group's result, it registers what to do once every field group and link under
// a node has settled.
package sched

// Submission is a unit of work handed to an Executor: a single resolver invocation. Submission
// owns reporting its own outcome into the TaskSet it was submitted under; Executor implementations
// just need to run it.
type Submission func()

// Executor runs Submissions through a minimal single-method contract rather than returning a
// handle the caller must poll.
type Executor interface {
	// Submit arranges fn for execution. Submit may run fn synchronously (a cooperative/inline
	// executor) or hand it to a worker pool; either way fn's own Track/release bookkeeping is what
	// signals completion, not Submit's return.
	Submit(fn Submission)

	// Process blocks the calling goroutine until every Submission handed to this Executor (for the
	// Queue that owns it) has completed. Implementations backed by a real thread pool can simply
	// wait on a WaitGroup; a cooperative executor drains its inline work here.
	Process()
}
