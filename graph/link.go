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

// LinkConfig is the definition of a Link as supplied when building a Node.
type LinkConfig struct {
	// NodeName of the Link's target.
	NodeName string

	// Cardinality of the link's result.
	Cardinality Cardinality

	// Requires names a Field on the same Node whose resolved value feeds the link resolver.
	// Empty string means no dependency.
	Requires string

	// Resolver serving this link.
	Resolver *LinkResolver

	// Options declared for this link.
	Options []Option
}

// Link is a resolved, named edge from a Node to another Node.
type Link struct {
	Name        string
	NodeName    string
	Cardinality Cardinality
	Requires    string
	Resolver    *LinkResolver
	Options     []Option
}

// LinkMap indexes a Node's Links by name.
type LinkMap map[string]*Link

func buildLinkMap(configs map[string]LinkConfig) (LinkMap, error) {
	if len(configs) == 0 {
		return nil, nil
	}
	out := make(LinkMap, len(configs))
	for name, cfg := range configs {
		if cfg.Resolver == nil {
			return nil, &buildError{msg: "link " + name + ": Resolver must not be nil"}
		}
		if cfg.NodeName == "" {
			return nil, &buildError{msg: "link " + name + ": NodeName must not be empty"}
		}
		out[name] = &Link{
			Name:        name,
			NodeName:    cfg.NodeName,
			Cardinality: cfg.Cardinality,
			Requires:    cfg.Requires,
			Resolver:    cfg.Resolver,
			Options:     cfg.Options,
		}
	}
	return out, nil
}
