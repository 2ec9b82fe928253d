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

// Await blocks the calling goroutine until f resolves, polling it with a Waker that unparks this
// goroutine rather than spinning. This bridges the poll-based Future model to call sites that
// need a synchronous result -- cache/loader.go's DataLoader-backed batch reads, in particular,
// which run inline inside a resolver-completion callback and cannot themselves return a Future.
func Await(f Future) (interface{}, error) {
	woken := make(chan struct{}, 1)
	waker := WakerFunc(func() error {
		select {
		case woken <- struct{}{}:
		default:
		}
		return nil
	})

	for {
		result, err := f.Poll(waker)
		if err != nil {
			return nil, err
		}
		if result == PollResultPending {
			<-woken
			continue
		}
		return result, nil
	}
}
