// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bucket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/revstore/bucket"
)

func TestSlotTransitions(t *testing.T) {
	s := bucket.Slot{}
	assert.True(t, s.IsEmpty(), "zero slot is empty")

	s.Set(bucket.Item("abc"))
	assert.True(t, s.IsPresent(), "set")
	assert.Equal(t, bucket.Item("abc"), s.Item, "item")

	s.Remove()
	assert.True(t, s.IsTombstone(), "removed")
	assert.Nil(t, s.Item, "tombstone carries no item")
}

func TestLeafCloneIsDeep(t *testing.T) {
	l := bucket.NewLeaf(5, 1, 2, 4)
	l.Slots[1] = bucket.PresentSlot(bucket.Item("one"))
	l.Slots[2] = bucket.TombstoneSlot()

	c := l.Clone()
	c.Slots[1].Item[0] = 'X'
	c.Slots[3].Set(bucket.Item("three"))

	assert.Equal(t, bucket.Item("one"), l.Slots[1].Item, "original item unchanged")
	assert.True(t, l.Slots[3].IsEmpty(), "original slot unchanged")
	assert.Equal(t, 2, l.Used(), "original used")
	assert.Equal(t, 3, c.Used(), "clone used")
}

func TestLeafSlotBounds(t *testing.T) {
	l := bucket.NewLeaf(1, 0, 0, 8)

	_, ok := l.Slot(-1)
	assert.False(t, ok, "negative")
	_, ok = l.Slot(8)
	assert.False(t, ok, "too large")

	s, ok := l.Slot(7)
	assert.True(t, ok, "last")
	s.Set(bucket.Item("z"))
	assert.True(t, l.Slots[7].IsPresent(), "slot is addressable")
}

func TestIndirectCloneIsDeep(t *testing.T) {
	i := bucket.NewIndirect(3, 4)
	i.References[2] = bucket.Reference{Key: 9, Hash: []byte{1, 2, 3}}

	c := i.Clone()
	c.References[2].Hash[0] = 0xff
	c.References[0].Key = 11

	assert.Equal(t, []byte{1, 2, 3}, i.References[2].Hash, "hash unchanged")
	assert.True(t, i.References[0].IsNull(), "reference unchanged")
}

func TestMetaCloneCopiesEntries(t *testing.T) {
	m := bucket.NewMeta(1)
	m.Entries["a"] = []byte("1")

	c := m.Clone(2)
	c.Entries["a"][0] = '9'
	c.Entries["b"] = []byte("2")

	assert.Equal(t, uint64(2), c.Key(), "new key")
	assert.Equal(t, []byte("1"), m.Entries["a"], "value unchanged")
	assert.Len(t, m.Entries, 1, "entries unchanged")
}

func TestGlobalRootNextKey(t *testing.T) {
	g := &bucket.GlobalRoot{}
	assert.Equal(t, uint64(1), g.NextKey(), "first key skips zero")
	assert.Equal(t, uint64(2), g.NextKey(), "second key")
	assert.Equal(t, uint64(2), g.Counter, "counter")
}

func TestReferenceEqual(t *testing.T) {
	leaf := bucket.NewLeaf(9, 0, 1, 4)
	ref, err := bucket.ReferenceTo(leaf)
	assert.Nil(t, err, "reference")
	assert.Equal(t, uint64(9), ref.Key, "key")

	same := bucket.Reference{Key: 9, Hash: append([]byte(nil), ref.Hash...)}
	assert.True(t, ref.Equal(same), "same key and hash")

	other := leaf.Clone()
	other.Slots[0] = bucket.PresentSlot(bucket.Item("x"))
	changed, err := bucket.ReferenceTo(other)
	assert.Nil(t, err, "reference")
	assert.False(t, ref.Equal(changed), "content changed")

	assert.False(t, ref.Equal(bucket.Reference{Key: 10, Hash: ref.Hash}), "different key")
	assert.True(t, bucket.Reference{}.Equal(bucket.Reference{Hash: []byte{}}), "null references")
}
