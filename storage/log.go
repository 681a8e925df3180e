// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"sort"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/revisioning"
)

// logKey - address of a bucket in one of the two trees
//
// level Depth() of the data tree holds leaves
type logKey struct {
	revisionTree bool
	level        int
	node         uint64
}

func (k logKey) String() string {
	tag := 'D'
	if k.revisionTree {
		tag = 'R'
	}
	return fmt.Sprintf("%c:%d:%d", tag, k.level, k.node)
}

// logEntry - staged copy of a bucket
//
// exactly one of indirect and leaf is set
type logEntry struct {
	key      logKey
	indirect *bucket.Indirect
	leaf     *revisioning.Container
}

// modified - the bucket that gets persisted
func (e *logEntry) modified() bucket.Bucket {
	if nil != e.leaf {
		return e.leaf.Modified
	}
	return e.indirect
}

// trxLog - buckets staged by a write transaction
type trxLog struct {
	cache *cache.Cache
}

func newLog() *trxLog {
	return &trxLog{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (l *trxLog) get(k logKey) (*logEntry, bool) {
	obj, found := l.cache.Get(k.String())
	if !found {
		return nil, false
	}
	return obj.(*logEntry), true
}

func (l *trxLog) putIndirect(k logKey, indirect *bucket.Indirect) *logEntry {
	e := &logEntry{key: k, indirect: indirect}
	l.cache.Set(k.String(), e, cache.NoExpiration)
	return e
}

func (l *trxLog) putLeaf(k logKey, container *revisioning.Container) *logEntry {
	e := &logEntry{key: k, leaf: container}
	l.cache.Set(k.String(), e, cache.NoExpiration)
	return e
}

// entries of one tree, deepest level first then by node
func (l *trxLog) entries(revisionTree bool) []*logEntry {
	items := l.cache.Items()
	entries := make([]*logEntry, 0, len(items))
	for _, item := range items {
		e := item.Object.(*logEntry)
		if revisionTree == e.key.revisionTree {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].key.level != entries[j].key.level {
			return entries[i].key.level > entries[j].key.level
		}
		return entries[i].key.node < entries[j].key.node
	})
	return entries
}

func (l *trxLog) count() int {
	return l.cache.ItemCount()
}

func (l *trxLog) clear() {
	l.cache.Flush()
}
