// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/bucket"
)

// view - read access to one committed revision
type view struct {
	tree         *tree
	reader       backend.Reader
	revisionRoot *bucket.RevisionRoot
	meta         *bucket.Meta
	cache        *leafCache
}

func newView(t *tree, r backend.Reader, global *bucket.GlobalRoot, revision uint64, cacheSize int) (*view, error) {
	revisionRoot, err := t.revisionRoot(r, global, revision)
	if nil != err {
		return nil, err
	}
	meta, err := t.meta(r, revisionRoot.Meta)
	if nil != err {
		return nil, err
	}
	cache, err := newLeafCache(cacheSize)
	if nil != err {
		return nil, err
	}
	return &view{
		tree:         t,
		reader:       r,
		revisionRoot: revisionRoot,
		meta:         meta,
		cache:        cache,
	}, nil
}

// combined leaf for a sequence key, nil if never materialised
func (v *view) leaf(sequenceKey uint64) (*bucket.Leaf, error) {
	if leaf, ok := v.cache.get(sequenceKey); ok {
		return leaf, nil
	}

	head, err := v.tree.lookup(v.reader, v.revisionRoot.Data, sequenceKey)
	if nil != err {
		return nil, err
	}

	var leaf *bucket.Leaf
	if !head.IsNull() {
		chain, err := v.tree.chain(v.reader, head, sequenceKey)
		if nil != err {
			return nil, err
		}
		leaf, err = v.tree.strategy.CombineForRead(chain)
		if nil != err {
			return nil, err
		}
	}
	v.cache.put(sequenceKey, leaf)
	return leaf, nil
}

func (v *view) get(itemKey uint64) (bucket.Item, bool, error) {
	if itemKey > v.revisionRoot.MaxItemKey {
		return nil, false, nil
	}
	sequenceKey, offset := v.tree.layout.Locate(itemKey)
	leaf, err := v.leaf(sequenceKey)
	if nil != err {
		return nil, false, err
	}
	if nil == leaf {
		return nil, false, nil
	}
	item, found := visible(itemKey, leaf.Slots[offset])
	return item, found, nil
}

func (v *view) metaEntry(key string) ([]byte, bool) {
	value, ok := v.meta.Entries[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), value...), true
}

// apply tombstone filtering to a slot; item key 0 is the document
// root placeholder and is never filtered
func visible(itemKey uint64, slot bucket.Slot) (bucket.Item, bool) {
	switch {
	case slot.IsPresent():
		return append(bucket.Item(nil), slot.Item...), true
	case slot.IsTombstone() && 0 == itemKey:
		return nil, true
	default:
		return nil, false
	}
}
