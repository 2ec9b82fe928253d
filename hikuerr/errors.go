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

// Package hikuerr defines the typed error kinds raised by the query
// execution engine. Every kind is a concrete struct so callers can
// errors.As into it rather than string-matching.
package hikuerr

import "fmt"

//===----------------------------------------------------------------------------------------====//
// MissingRequiredOption
//===----------------------------------------------------------------------------------------====//

// MissingRequiredOption is raised by the Option Initializer when a query omits an option that
// carries no default (the schema Option's default is the Nothing sentinel).
type MissingRequiredOption struct {
	Node   string
	Field  string
	Option string
}

var _ error = (*MissingRequiredOption)(nil)

func (e *MissingRequiredOption) Error() string {
	return fmt.Sprintf("%s.%s: missing required option %q", e.Node, e.Field, e.Option)
}

//===----------------------------------------------------------------------------------------====//
// OptionTypeMismatch
//===----------------------------------------------------------------------------------------====//

// OptionTypeMismatch is raised when an option's supplied value cannot be coerced to the option's
// declared type.
type OptionTypeMismatch struct {
	Node     string
	Field    string
	Option   string
	Expected string
	Value    interface{}
}

var _ error = (*OptionTypeMismatch)(nil)

func (e *OptionTypeMismatch) Error() string {
	return fmt.Sprintf("%s.%s: option %q expects %s, got %#v", e.Node, e.Field, e.Option, e.Expected, e.Value)
}

//===----------------------------------------------------------------------------------------====//
// ResolverShape
//===----------------------------------------------------------------------------------------====//

// ResolverShape is raised when a resolver's return value violates its expected shape: a single
// row or per-id rows keyed by field name, in the order the ids were given.
type ResolverShape struct {
	Node     string
	Field    string
	Expected string
	Observed string
	Hint     string
}

var _ error = (*ResolverShape)(nil)

func (e *ResolverShape) Error() string {
	msg := fmt.Sprintf("%s.%s: resolver returned %s, expected %s", e.Node, e.Field, e.Observed, e.Expected)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

//===----------------------------------------------------------------------------------------====//
// NullNonOptional
//===----------------------------------------------------------------------------------------====//

// NullNonOptional is raised from process_link when a One-cardinality link resolver returns
// Nothing for some id.
type NullNonOptional struct {
	Node string
	Link string
}

var _ error = (*NullNonOptional)(nil)

func (e *NullNonOptional) Error() string {
	return fmt.Sprintf("%s.%s: link declared cardinality One returned Nothing", e.Node, e.Link)
}

//===----------------------------------------------------------------------------------------====//
// UnhashableIdent
//===----------------------------------------------------------------------------------------====//

// UnhashableIdent is raised when a link resolver returns an ident that cannot be used as an Index
// key (it is not comparable).
type UnhashableIdent struct {
	Node  string
	Link  string
	Value interface{}
}

var _ error = (*UnhashableIdent)(nil)

func (e *UnhashableIdent) Error() string {
	return fmt.Sprintf(
		"%s.%s: ident %#v is not hashable (wrap it in a value type, or a record with value equality)",
		e.Node, e.Link, e.Value,
	)
}

//===----------------------------------------------------------------------------------------====//
// MissingContextKey
//===----------------------------------------------------------------------------------------====//

// MissingContextKey is raised by hikuctx.Context.Require when a resolver reads a key that was
// never set for the request.
type MissingContextKey struct {
	Key string
}

var _ error = (*MissingContextKey)(nil)

func (e *MissingContextKey) Error() string {
	return fmt.Sprintf("context: missing required key %q", e.Key)
}

//===----------------------------------------------------------------------------------------====//
// Unsupported
//===----------------------------------------------------------------------------------------====//

// Unsupported is raised when a directive or feature is applied somewhere the engine has
// deliberately decided not to support it -- currently, @cached on a root-level link.
type Unsupported struct {
	Reason string
}

var _ error = (*Unsupported)(nil)

func (e *Unsupported) Error() string {
	return "unsupported: " + e.Reason
}
