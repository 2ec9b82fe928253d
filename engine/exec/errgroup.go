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

import (
	"golang.org/x/sync/errgroup"

	"github.com/okorienev/hiku/sched"
)

// ErrGroupExecutor runs each Submission on its own goroutine via errgroup.Group, optionally capped
// by SetLimit. It has no warm pool and no keep-alive tuning, unlike PoolExecutor -- a cheaper
// default for request volumes too low to justify a standing pool.
type ErrGroupExecutor struct {
	limit int
	g     *errgroup.Group
}

var _ sched.Executor = (*ErrGroupExecutor)(nil)

// NewErrGroupExecutor returns an ErrGroupExecutor. limit caps the number of Submissions running
// concurrently; zero or negative means unbounded.
func NewErrGroupExecutor(limit int) *ErrGroupExecutor {
	return &ErrGroupExecutor{limit: limit, g: newErrGroup(limit)}
}

func newErrGroup(limit int) *errgroup.Group {
	g := &errgroup.Group{}
	if limit > 0 {
		g.SetLimit(limit)
	}
	return g
}

// Submit implements sched.Executor.
func (e *ErrGroupExecutor) Submit(fn sched.Submission) {
	e.g.Go(func() error {
		fn()
		return nil
	})
}

// Process implements sched.Executor. It waits for every goroutine spawned by Submit so far, then
// resets the internal errgroup.Group so the Executor can be reused for the next query.
func (e *ErrGroupExecutor) Process() {
	_ = e.g.Wait()
	e.g = newErrGroup(e.limit)
}
