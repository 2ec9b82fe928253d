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

package cache

// MarshalRecord serializes a Record to the byte form stored by a Cache backend.
func MarshalRecord(rec Record) ([]byte, error) {
	return canonicalJSON.Marshal(map[string]interface{}(rec))
}

// UnmarshalRecord deserializes bytes previously produced by MarshalRecord. Note that nested
// records come back as map[string]interface{}, not Record -- UpdateIndex's []interface{}/
// map[string]interface{} cases exist exactly to handle that round-trip.
func UnmarshalRecord(b []byte) (Record, error) {
	var m map[string]interface{}
	if err := canonicalJSON.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return Record(m), nil
}
