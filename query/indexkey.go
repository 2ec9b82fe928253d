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

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"

	jsoniter "github.com/json-iterator/go"
)

// Options maps a schema Option's name to its (already-defaulted) value.
type Options map[string]interface{}

var canonicalJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// canonicalize produces a map with sorted keys so two Options built in different iteration
// orders marshal to the same bytes; jsoniter already sorts map keys when encoding map[string]any,
// but we sort explicitly here so the guarantee doesn't depend on an encoder implementation detail.
func (o Options) canonicalize() map[string]interface{} {
	if len(o) == 0 {
		return nil
	}
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]interface{}, len(o))
	for _, k := range keys {
		out[k] = o[k]
	}
	return out
}

// IndexKey computes a field/link's storage slot: the field name plus a stable hash of its
// options, so that index_key is a pure function of (field-name, options) -- equal keys imply
// interchangeable values. Fields/links with no options hash to just the bare name so the common
// case stays readable in debug dumps.
func IndexKey(name string, options Options) string {
	if len(options) == 0 {
		return name
	}
	data, err := canonicalJSON.Marshal(options.canonicalize())
	if err != nil {
		// Options must be JSON-representable; a marshal failure means the caller passed a value
		// (e.g. a channel or func) that can never be a legal option value. Fall back to the name
		// alone rather than panicking -- two such (malformed) option sets will collide, which is a
		// schema bug the option-type checker (optioninit) should have already caught.
		return name
	}
	sum := sha1.Sum(data)
	return name + ":" + hex.EncodeToString(sum[:8])
}
