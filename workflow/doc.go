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

// Package workflow implements process_node: the walk that drives a query tree
// against a schema Graph, grouping sibling fields by resolver so batched members are resolved in
// one call, recursing through links into nested nodes, and writing every resolved value into an
// Index so the caller's Proxy can read it back out.
//
// A Root node is modeled the same way as any other: it is processed with a single implicit id,
// sentinel.ROOT, so the field-grouping and link-scheduling logic never has to special-case it;
// only the Index write/read path (SetRoot/LookupRoot vs. Set/Lookup) distinguishes it.
package workflow
