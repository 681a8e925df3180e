// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bucket

import (
	"bytes"
	"fmt"
)

// Kind - the type of a stored bucket
type Kind uint8

// bucket kinds - values are persisted so only append
const (
	KindLeaf Kind = iota + 1
	KindIndirect
	KindRevisionRoot
	KindMeta
	KindGlobalRoot
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindIndirect:
		return "indirect"
	case KindRevisionRoot:
		return "revision-root"
	case KindMeta:
		return "meta"
	case KindGlobalRoot:
		return "global-root"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Bucket - anything that can be written to a backend
type Bucket interface {
	Key() uint64
	Kind() Kind
}

// Reference - link from a parent bucket to a child
//
// a zero key means the child has not been materialised; the hash
// is filled in when the child is committed
type Reference struct {
	Key  uint64 `cbor:"1,keyasint"`
	Hash []byte `cbor:"2,keyasint,omitempty"`
}

// IsNull - true if the reference points nowhere
func (r Reference) IsNull() bool {
	return 0 == r.Key
}

// Equal - compare key and hash
func (r Reference) Equal(other Reference) bool {
	return r.Key == other.Key && bytes.Equal(r.Hash, other.Hash)
}

// Leaf - one revision's copy of a group of item slots
//
// a Full leaf is complete on its own; otherwise only its non-empty
// slots are meaningful and the remainder are found by following
// Previous towards older revisions
type Leaf struct {
	BucketKey   uint64 `cbor:"1,keyasint"`
	SequenceKey uint64 `cbor:"2,keyasint"`
	Revision    uint64 `cbor:"3,keyasint"`
	Full        bool   `cbor:"4,keyasint"`
	Previous    uint64 `cbor:"5,keyasint"`
	Slots       []Slot `cbor:"6,keyasint"`
}

// NewLeaf - an empty leaf
func NewLeaf(bucketKey uint64, sequenceKey uint64, revision uint64, slots int) *Leaf {
	return &Leaf{
		BucketKey:   bucketKey,
		SequenceKey: sequenceKey,
		Revision:    revision,
		Slots:       make([]Slot, slots),
	}
}

func (l *Leaf) Key() uint64 { return l.BucketKey }
func (l *Leaf) Kind() Kind  { return KindLeaf }

// Clone - deep copy
func (l *Leaf) Clone() *Leaf {
	c := *l
	c.Slots = make([]Slot, len(l.Slots))
	for i, s := range l.Slots {
		c.Slots[i] = s.Clone()
	}
	return &c
}

// Slot - bounds checked slot access
func (l *Leaf) Slot(offset int) (*Slot, bool) {
	if offset < 0 || offset >= len(l.Slots) {
		return nil, false
	}
	return &l.Slots[offset], true
}

// Used - count of non-empty slots
func (l *Leaf) Used() int {
	n := 0
	for _, s := range l.Slots {
		if !s.IsEmpty() {
			n += 1
		}
	}
	return n
}

// Indirect - fixed size array of child references
type Indirect struct {
	BucketKey  uint64      `cbor:"1,keyasint"`
	References []Reference `cbor:"2,keyasint"`
}

// NewIndirect - an indirect bucket with all references null
func NewIndirect(bucketKey uint64, fanout int) *Indirect {
	return &Indirect{
		BucketKey:  bucketKey,
		References: make([]Reference, fanout),
	}
}

func (i *Indirect) Key() uint64 { return i.BucketKey }
func (i *Indirect) Kind() Kind  { return KindIndirect }

// Clone - deep copy
func (i *Indirect) Clone() *Indirect {
	c := &Indirect{
		BucketKey:  i.BucketKey,
		References: make([]Reference, len(i.References)),
	}
	for n, r := range i.References {
		c.References[n] = Reference{Key: r.Key, Hash: append([]byte(nil), r.Hash...)}
	}
	return c
}

// RevisionRoot - entry point to one committed revision
type RevisionRoot struct {
	BucketKey  uint64    `cbor:"1,keyasint"`
	Revision   uint64    `cbor:"2,keyasint"`
	MaxItemKey uint64    `cbor:"3,keyasint"`
	Timestamp  int64     `cbor:"4,keyasint"`
	Data       Reference `cbor:"5,keyasint"`
	Meta       Reference `cbor:"6,keyasint"`
}

func (r *RevisionRoot) Key() uint64 { return r.BucketKey }
func (r *RevisionRoot) Kind() Kind  { return KindRevisionRoot }

// Clone - deep copy
func (r *RevisionRoot) Clone() *RevisionRoot {
	c := *r
	c.Data.Hash = append([]byte(nil), r.Data.Hash...)
	c.Meta.Hash = append([]byte(nil), r.Meta.Hash...)
	return &c
}

// Meta - small per revision key/value map
type Meta struct {
	BucketKey uint64            `cbor:"1,keyasint"`
	Entries   map[string][]byte `cbor:"2,keyasint"`
}

// NewMeta - an empty metadata bucket
func NewMeta(bucketKey uint64) *Meta {
	return &Meta{
		BucketKey: bucketKey,
		Entries:   make(map[string][]byte),
	}
}

func (m *Meta) Key() uint64 { return m.BucketKey }
func (m *Meta) Kind() Kind  { return KindMeta }

// Clone - deep copy with a new key
func (m *Meta) Clone(bucketKey uint64) *Meta {
	c := NewMeta(bucketKey)
	for k, v := range m.Entries {
		c.Entries[k] = append([]byte(nil), v...)
	}
	return c
}

// GlobalRoot - entry point to the whole resource
type GlobalRoot struct {
	BucketKey uint64    `cbor:"1,keyasint"`
	Revision  uint64    `cbor:"2,keyasint"`
	Counter   uint64    `cbor:"3,keyasint"`
	Revisions Reference `cbor:"4,keyasint"`
}

func (g *GlobalRoot) Key() uint64 { return g.BucketKey }
func (g *GlobalRoot) Kind() Kind  { return KindGlobalRoot }

// Clone - deep copy
func (g *GlobalRoot) Clone() *GlobalRoot {
	c := *g
	c.Revisions.Hash = append([]byte(nil), g.Revisions.Hash...)
	return &c
}

// NextKey - allocate a fresh bucket key
func (g *GlobalRoot) NextKey() uint64 {
	g.Counter += 1
	return g.Counter
}
