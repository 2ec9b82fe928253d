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

package hikuerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			"MissingRequiredOption",
			&MissingRequiredOption{Node: "book", Field: "title", Option: "lang"},
			`book.title: missing required option "lang"`,
		},
		{
			"OptionTypeMismatch",
			&OptionTypeMismatch{Node: "book", Field: "title", Option: "lang", Expected: "String", Value: 1},
			`book.title: option "lang" expects String, got 1`,
		},
		{
			"ResolverShape with hint",
			&ResolverShape{Node: "book", Field: "title", Expected: "a single row", Observed: "a slice", Hint: "called at Root"},
			"book.title: resolver returned a slice, expected a single row (called at Root)",
		},
		{
			"ResolverShape without hint",
			&ResolverShape{Node: "book", Field: "title", Expected: "a single row", Observed: "a slice"},
			"book.title: resolver returned a slice, expected a single row",
		},
		{
			"NullNonOptional",
			&NullNonOptional{Node: "book", Link: "author"},
			"book.author: link declared cardinality One returned Nothing",
		},
		{
			"UnhashableIdent",
			&UnhashableIdent{Node: "book", Link: "author", Value: []int{1}},
			`book.author: ident []int{1} is not hashable (wrap it in a value type, or a record with value equality)`,
		},
		{
			"MissingContextKey",
			&MissingContextKey{Key: "user_id"},
			`context: missing required key "user_id"`,
		},
		{
			"Unsupported",
			&Unsupported{Reason: "@cached on a root-level link"},
			"unsupported: @cached on a root-level link",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestErrorsAsRoundTrips(t *testing.T) {
	var wrapped error = fmt.Errorf("schedule node: %w", &ResolverShape{Node: "book", Field: "title"})

	var shapeErr *ResolverShape
	assert.True(t, errors.As(wrapped, &shapeErr))
	assert.Equal(t, "book", shapeErr.Node)

	var nullErr *NullNonOptional
	assert.False(t, errors.As(wrapped, &nullErr))
}
