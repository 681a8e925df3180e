// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/revstore/bucket"
)

func TestLeafCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := newLeafCache(2)
	require.Nil(t, err, "new cache")

	c.put(1, bucket.NewLeaf(11, 1, 0, 4))
	c.put(2, bucket.NewLeaf(12, 2, 0, 4))
	_, ok := c.get(1)
	assert.True(t, ok, "hit")

	c.put(3, bucket.NewLeaf(13, 3, 0, 4))
	_, ok = c.get(2)
	assert.False(t, ok, "least recently used evicted")
	_, ok = c.get(1)
	assert.True(t, ok, "recently used kept")
	assert.Equal(t, 2, c.len(), "size")

	c.purge()
	assert.Equal(t, 0, c.len(), "purged")
}

func TestLeafCacheRemembersAbsentLeaves(t *testing.T) {
	c, err := newLeafCache(4)
	require.Nil(t, err, "new cache")

	c.put(9, nil)
	leaf, ok := c.get(9)
	assert.True(t, ok, "cached")
	assert.Nil(t, leaf, "absent leaf")
}

func TestLeafCacheRejectsZeroSize(t *testing.T) {
	_, err := newLeafCache(0)
	assert.NotNil(t, err, "zero size")
}

func TestConfigurationCacheSizeHasFloor(t *testing.T) {
	c := DefaultConfiguration()
	c.CacheSize = 0
	assert.Equal(t, minimumCacheSize, c.cacheSize(), "floor")
	c.CacheSize = 5000
	assert.Equal(t, 5000, c.cacheSize(), "configured")
}
