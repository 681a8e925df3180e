// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bucket

// Item - opaque record payload
type Item []byte

// SlotState - tag of the slot variant
type SlotState uint8

// slot states - values are persisted
const (
	Empty SlotState = iota
	Tombstone
	Present
)

func (s SlotState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Tombstone:
		return "tombstone"
	case Present:
		return "present"
	default:
		return "invalid"
	}
}

// Slot - one item position within a leaf
type Slot struct {
	State SlotState `cbor:"1,keyasint"`
	Item  Item      `cbor:"2,keyasint,omitempty"`
}

// PresentSlot - a slot holding a live item
func PresentSlot(item Item) Slot {
	return Slot{State: Present, Item: item}
}

// TombstoneSlot - a slot marking a deleted item
func TombstoneSlot() Slot {
	return Slot{State: Tombstone}
}

func (s Slot) IsEmpty() bool     { return Empty == s.State }
func (s Slot) IsTombstone() bool { return Tombstone == s.State }
func (s Slot) IsPresent() bool   { return Present == s.State }

// Set - store a live item
func (s *Slot) Set(item Item) {
	s.State = Present
	s.Item = item
}

// Remove - replace the content with a tombstone
func (s *Slot) Remove() {
	s.State = Tombstone
	s.Item = nil
}

// Clone - deep copy
func (s Slot) Clone() Slot {
	if nil == s.Item {
		return Slot{State: s.State}
	}
	return Slot{State: s.State, Item: append(Item(nil), s.Item...)}
}
