// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/bitmark-inc/revstore/bucket"
)

// leafCache - combined leaves of one revision by sequence key
//
// a nil leaf records a sequence key that was never materialised
type leafCache struct {
	cache *lru.Cache
}

func newLeafCache(size int) (*leafCache, error) {
	c, err := lru.New(size)
	if nil != err {
		return nil, err
	}
	return &leafCache{cache: c}, nil
}

func (c *leafCache) get(sequenceKey uint64) (*bucket.Leaf, bool) {
	obj, found := c.cache.Get(sequenceKey)
	if !found {
		return nil, false
	}
	return obj.(*bucket.Leaf), true
}

func (c *leafCache) put(sequenceKey uint64, leaf *bucket.Leaf) {
	c.cache.Add(sequenceKey, leaf)
}

func (c *leafCache) len() int {
	return c.cache.Len()
}

func (c *leafCache) purge() {
	c.cache.Purge()
}
