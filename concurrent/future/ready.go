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

package future

import "errors"

// readyFuture is a Future that is already resolved at construction time, with either a value or an
// error. Polling it never returns PollResultPending.
type readyFuture struct {
	value interface{}
	err   error
}

var _ Future = readyFuture{}

// Poll implements Future. waker is ignored since the future never goes pending.
func (f readyFuture) Poll(Waker) (PollResult, error) {
	return f.value, f.err
}

// Ready returns a Future that immediately resolves to value.
func Ready(value interface{}) Future {
	return readyFuture{value: value}
}

// Err returns a Future that immediately resolves to err. A nil err is replaced by an error with an
// empty message, so the returned Future always fails.
func Err(err error) Future {
	if err == nil {
		err = errors.New("")
	}
	return readyFuture{err: err}
}
