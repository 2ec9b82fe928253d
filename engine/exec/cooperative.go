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

package exec

import "github.com/okorienev/hiku/sched"

// CooperativeExecutor runs every Submission synchronously on the calling goroutine, queueing
// re-entrant Submits (a Submission that itself calls Queue.Submit, as process_node does
// recursively) rather than recursing, so a deeply nested query doesn't grow the Go call stack
// proportionally to its depth. Process drains the queue.
//
// Useful for tests and for small single-tenant deployments that would rather pay latency than run
// a pool.
type CooperativeExecutor struct {
	pending []sched.Submission
	running bool
}

var _ sched.Executor = (*CooperativeExecutor)(nil)

// NewCooperativeExecutor returns a ready-to-use CooperativeExecutor.
func NewCooperativeExecutor() *CooperativeExecutor {
	return &CooperativeExecutor{}
}

// Submit implements sched.Executor.
func (e *CooperativeExecutor) Submit(fn sched.Submission) {
	e.pending = append(e.pending, fn)
	if e.running {
		// A Submission in the middle of draining is scheduling more work; let the active Process
		// loop pick it up instead of recursing into it here.
		return
	}
}

// Process implements sched.Executor. It drains pending Submissions in FIFO order until none
// remain, including Submissions enqueued by Submissions that ran earlier in the same drain.
func (e *CooperativeExecutor) Process() {
	e.running = true
	defer func() { e.running = false }()

	for len(e.pending) > 0 {
		fn := e.pending[0]
		e.pending = e.pending[1:]
		fn()
	}
}
