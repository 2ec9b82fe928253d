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

package graph

import "github.com/okorienev/hiku/sentinel"

// OptionType names the scalar kind an Option's value must coerce to. optioninit uses this for its
// OptionTypeMismatch check.
type OptionType int

const (
	// AnyType accepts any JSON-representable value without coercion.
	AnyType OptionType = iota
	StringType
	IntType
	FloatType
	BoolType
)

// String implements fmt.Stringer.
func (t OptionType) String() string {
	switch t {
	case StringType:
		return "string"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case BoolType:
		return "bool"
	default:
		return "any"
	}
}

// Option declares a single named, typed, optionally-defaulted argument on a Field or Link.
// Default is sentinel.Nothing to mean "required": the Option Initializer fails with
// MissingRequiredOption if the query omits it.
type Option struct {
	Name    string
	Type    OptionType
	Default interface{}
}

// Required reports whether the option has no default and must be supplied by the query.
func (o Option) Required() bool {
	return sentinel.IsNothing(o.Default)
}
