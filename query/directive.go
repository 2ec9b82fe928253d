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

package query

// CachedDirectiveName is the only directive the engine interprets: "@cached(ttl: int)" on a
// QueryLink. Any other directive name in a QueryLink's DirectivesMap is ignored by the engine.
const CachedDirectiveName = "cached"

// CachedDirective is the decoded form of @cached(ttl: int).
type CachedDirective struct {
	TTL int
}

// Directives maps a directive name to its arguments. Only CachedDirectiveName is interpreted by
// the engine; everything else passes through untouched for a host's own use.
type Directives map[string]map[string]interface{}

// Cached extracts the @cached directive, if present.
func (d Directives) Cached() (CachedDirective, bool) {
	args, ok := d[CachedDirectiveName]
	if !ok {
		return CachedDirective{}, false
	}
	ttl, _ := args["ttl"].(int)
	return CachedDirective{TTL: ttl}, true
}
