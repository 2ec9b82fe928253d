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

// FieldConfig is the definition of a Field as supplied when building a Node.
type FieldConfig struct {
	// Resolver serving this field. Share the same *FieldResolver pointer across multiple
	// FieldConfigs to have them batched into a single resolver invocation.
	Resolver *FieldResolver

	// Options declared for this field.
	Options []Option
}

// Field is a resolved, named member of a Node.
type Field struct {
	Name     string
	Resolver *FieldResolver
	Options  []Option
}

// FieldMap indexes a Node's Fields by name.
type FieldMap map[string]*Field

func buildFieldMap(configs map[string]FieldConfig) (FieldMap, error) {
	if len(configs) == 0 {
		return nil, nil
	}
	out := make(FieldMap, len(configs))
	for name, cfg := range configs {
		if cfg.Resolver == nil {
			return nil, &buildError{msg: "field " + name + ": Resolver must not be nil"}
		}
		out[name] = &Field{
			Name:     name,
			Resolver: cfg.Resolver,
			Options:  cfg.Options,
		}
	}
	return out, nil
}
