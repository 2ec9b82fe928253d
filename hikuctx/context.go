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

// Package hikuctx implements the request-scoped Context handed to resolvers: a read-only view
// over a caller-supplied mapping, stamped with a correlation id for tracing.
package hikuctx

import (
	"github.com/google/uuid"

	"github.com/okorienev/hiku/hikuerr"
)

// Context is an opaque, read-only handle over request-scoped values. Resolvers marked
// pass_context receive it as their first argument.
type Context struct {
	id     uuid.UUID
	values map[string]interface{}
}

// New builds a Context from a caller-supplied mapping. The mapping is copied so that later
// mutation by the caller is not observed mid-request.
func New(values map[string]interface{}) Context {
	cp := make(map[string]interface{}, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Context{id: uuid.New(), values: cp}
}

// RequestID returns the correlation id that New stamped for this request; resolvers can read it
// through the Context. The workflow's tracing spans and the workflow and cache log lines do not
// carry it.
func (c Context) RequestID() uuid.UUID {
	return c.id
}

// Get returns the value stored under key and whether it was present.
func (c Context) Get(key string) (interface{}, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Require returns the value stored under key, failing with MissingContextKey if absent.
func (c Context) Require(key string) (interface{}, error) {
	v, ok := c.values[key]
	if !ok {
		return nil, &hikuerr.MissingContextKey{Key: key}
	}
	return v, nil
}
