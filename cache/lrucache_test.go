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

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUCacheSetManyThenGetMany(t *testing.T) {
	c, err := NewLRUCache(16)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.SetMany(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, time.Minute))

	got, err := c.GetMany(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got["a"])
	assert.Equal(t, []byte("2"), got["b"])
	_, ok := got["c"]
	assert.False(t, ok)
}

func TestLRUCacheExpiry(t *testing.T) {
	c, err := NewLRUCache(16)
	require.NoError(t, err)

	fakeNow := time.Now()
	c.now = func() time.Time { return fakeNow }

	ctx := context.Background()
	require.NoError(t, c.SetMany(ctx, map[string][]byte{"k": []byte("v")}, time.Second))

	fakeNow = fakeNow.Add(2 * time.Second)
	got, err := c.GetMany(ctx, []string{"k"})
	require.NoError(t, err)
	_, ok := got["k"]
	assert.False(t, ok)
}

func TestLRUCacheNoTTLNeverExpires(t *testing.T) {
	c, err := NewLRUCache(16)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.SetMany(ctx, map[string][]byte{"k": []byte("v")}, 0))

	got, err := c.GetMany(ctx, []string{"k"})
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got["k"])
}
