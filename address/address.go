// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - translate item keys into leaf slots and
// sequence keys into paths through a fixed depth indirect tree
//
// all functions are pure; a Layout is fixed when a resource is
// created and never changes afterwards
package address

import (
	"fmt"

	"github.com/bitmark-inc/revstore/fault"
)

// limits on the layout
const (
	MaximumLevels   = 8
	MaximumExponent = 16
	keyBits         = 64
)

// default layout: 128 slots per leaf, four levels of 128 references
const (
	DefaultLeafExponent  = 7
	DefaultLevelExponent = 7
	DefaultLevels        = 4
)

// Layout - shape of a resource's trees
//
// LevelExponents[0] belongs to the root level, the last entry to
// the level whose references point at leaves
type Layout struct {
	LeafExponent   uint   `json:"leaf_exponent"`
	LevelExponents []uint `json:"level_exponents"`
}

// Default - the standard layout
func Default() Layout {
	levels := make([]uint, DefaultLevels)
	for i := range levels {
		levels[i] = DefaultLevelExponent
	}
	return Layout{
		LeafExponent:   DefaultLeafExponent,
		LevelExponents: levels,
	}
}

// Validate - check that a layout can address keys within 64 bits
func (l Layout) Validate() error {
	if l.LeafExponent < 1 || l.LeafExponent > MaximumExponent {
		return fault.ErrInvalidLayout
	}
	if len(l.LevelExponents) < 1 || len(l.LevelExponents) > MaximumLevels {
		return fault.ErrInvalidLayout
	}
	total := l.LeafExponent
	for _, e := range l.LevelExponents {
		if e < 1 || e > MaximumExponent {
			return fault.ErrInvalidLayout
		}
		total += e
	}
	if total > keyBits {
		return fault.ErrInvalidLayout
	}
	return nil
}

// Depth - number of indirect levels
func (l Layout) Depth() int {
	return len(l.LevelExponents)
}

// SlotsPerLeaf - number of item slots in each leaf bucket
func (l Layout) SlotsPerLeaf() int {
	return 1 << l.LeafExponent
}

// Fanout - number of references in an indirect bucket at a level
func (l Layout) Fanout(level int) int {
	return 1 << l.LevelExponents[level]
}

// Locate - split an item key into sequence key and slot offset
func (l Layout) Locate(itemKey uint64) (uint64, int) {
	sequenceKey := itemKey >> l.LeafExponent
	slot := itemKey - sequenceKey<<l.LeafExponent
	return sequenceKey, int(slot)
}

// Reconstruct - inverse of Locate
func (l Layout) Reconstruct(sequenceKey uint64, slot int) uint64 {
	return sequenceKey<<l.LeafExponent | uint64(slot)
}

// SequenceBits - number of sequence key bits the indirect tree resolves
func (l Layout) SequenceBits() uint {
	total := uint(0)
	for _, e := range l.LevelExponents {
		total += e
	}
	return total
}

// InRange - true if the tree can address the sequence key
func (l Layout) InRange(sequenceKey uint64) bool {
	bits := l.SequenceBits()
	if bits >= keyBits {
		return true
	}
	return sequenceKey < uint64(1)<<bits
}

// ItemKeyInRange - true if the item key lands in an addressable leaf
func (l Layout) ItemKeyInRange(itemKey uint64) bool {
	sequenceKey, _ := l.Locate(itemKey)
	return l.InRange(sequenceKey)
}

// exponent of the child offset at a level
func (l Layout) exponent(level int) uint {
	e := uint(0)
	for _, b := range l.LevelExponents[level+1:] {
		e += b
	}
	return e
}

func (l Layout) mask(level int) uint64 {
	return uint64(1)<<l.LevelExponents[level] - 1
}

// PathOffsets - per level child offsets for a sequence key, root level first
func (l Layout) PathOffsets(sequenceKey uint64) []int {
	offsets := make([]int, len(l.LevelExponents))
	for level := range l.LevelExponents {
		offsets[level] = int(sequenceKey >> l.exponent(level) & l.mask(level))
	}
	return offsets
}

// NodeKey - identity of the bucket at a level on the path to a
// sequence key
//
// level 0 is the root (always node 0 for keys in range) and level
// Depth() is the leaf itself, whose identity is the sequence key
func (l Layout) NodeKey(level int, sequenceKey uint64) uint64 {
	if level >= len(l.LevelExponents) {
		return sequenceKey
	}
	return sequenceKey >> (l.exponent(level) + l.LevelExponents[level])
}

// Parent - node key of the parent of a node and the offset of the
// node's reference inside that parent
//
// level must be in 1..Depth()
func (l Layout) Parent(level int, node uint64) (uint64, int) {
	if level < 1 || level > len(l.LevelExponents) {
		panic(fmt.Sprintf("address: no parent for level: %d", level))
	}
	bits := l.LevelExponents[level-1]
	return node >> bits, int(node & l.mask(level-1))
}

// String - compact layout description
func (l Layout) String() string {
	return fmt.Sprintf("leaf: 2^%d  levels: %v", l.LeafExponent, l.LevelExponents)
}
