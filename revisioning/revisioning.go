// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package revisioning - rebuild complete leaves from per revision
// chains and decide the shape of the next leaf in a chain
//
// a chain is ordered newest first and ends with a full leaf; a
// non-empty slot in a newer leaf (tombstones included) hides the
// same slot in every older leaf
package revisioning

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
)

// Container - the leaf a write transaction modifies
//
// Modified is what gets persisted, Complete is the full logical
// view used for reads inside the transaction
type Container struct {
	Modified *bucket.Leaf
	Complete *bucket.Leaf
}

// Set - apply the same slot value to both copies
func (c *Container) Set(offset int, slot bucket.Slot) error {
	m, ok := c.Modified.Slot(offset)
	if !ok {
		return fault.ErrSlotOutOfRange
	}
	v, ok := c.Complete.Slot(offset)
	if !ok {
		return fault.ErrSlotOutOfRange
	}
	*m = slot.Clone()
	*v = slot.Clone()
	return nil
}

// Strategy - a revisioning algorithm
type Strategy interface {
	Name() string
	RestoreDepth() int
	CombineForRead(chain []*bucket.Leaf) (*bucket.Leaf, error)
	CombineForWrite(chain []*bucket.Leaf, bucketKey uint64, revision uint64, makeFull bool) (*Container, error)
	MustBeFull(revision uint64, chainLength int) bool
}

// names of the built-in strategies
const (
	IncrementalName  = "incremental"
	FullDumpName     = "full"
	DifferentialName = "differential"
)

// DefaultName - strategy used when none is configured
const DefaultName = IncrementalName

var registry = map[string]func(int) Strategy{
	IncrementalName:  func(depth int) Strategy { return &Incremental{depth: depth} },
	FullDumpName:     func(depth int) Strategy { return &FullDump{depth: depth} },
	DifferentialName: func(depth int) Strategy { return &Differential{depth: depth} },
}

// New - create a strategy by name
func New(name string, restoreDepth int) (Strategy, error) {
	if restoreDepth < 1 {
		return nil, fault.ErrInvalidRestoreDepth
	}
	create, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(fault.ErrInvalidRevisioning, "name: %q", name)
	}
	return create(restoreDepth), nil
}

// Names - sorted list of available strategies
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// check that a chain ends at a full leaf within the restore depth
func validateChain(chain []*bucket.Leaf, depth int) error {
	if 0 == len(chain) {
		return fault.ErrChainBroken
	}
	if len(chain) > depth {
		return errors.Wrapf(fault.ErrChainTooLong, "sequence: %d  length: %d  restore depth: %d", chain[0].SequenceKey, len(chain), depth)
	}
	for i, leaf := range chain[:len(chain)-1] {
		if leaf.Full {
			return errors.Wrapf(fault.ErrChainBroken, "sequence: %d  full leaf at position: %d", leaf.SequenceKey, i)
		}
		if len(leaf.Slots) != len(chain[0].Slots) {
			return errors.Wrapf(fault.ErrSlotOutOfRange, "sequence: %d  slots: %d", leaf.SequenceKey, len(leaf.Slots))
		}
	}
	if last := chain[len(chain)-1]; !last.Full {
		return errors.Wrapf(fault.ErrChainBroken, "sequence: %d  bucket: %d", last.SequenceKey, last.BucketKey)
	} else if len(last.Slots) != len(chain[0].Slots) {
		return errors.Wrapf(fault.ErrSlotOutOfRange, "sequence: %d  slots: %d", last.SequenceKey, len(last.Slots))
	}
	return nil
}

// overlay a chain oldest to newest into a single full leaf
//
// the result takes its identity from the chain head
func overlay(chain []*bucket.Leaf) *bucket.Leaf {
	head := chain[0]
	result := chain[len(chain)-1].Clone()
	for i := len(chain) - 2; i >= 0; i -= 1 {
		for n, s := range chain[i].Slots {
			if !s.IsEmpty() {
				result.Slots[n] = s.Clone()
			}
		}
	}
	result.BucketKey = head.BucketKey
	result.Revision = head.Revision
	result.Previous = head.Previous
	result.Full = true
	return result
}

// combine a chain and check it at the same time
func combine(chain []*bucket.Leaf, depth int) (*bucket.Leaf, error) {
	if err := validateChain(chain, depth); nil != err {
		return nil, err
	}
	return overlay(chain), nil
}

// a full leaf with a fresh identity
func materialise(complete *bucket.Leaf, bucketKey uint64, revision uint64) *Container {
	modified := complete.Clone()
	modified.BucketKey = bucketKey
	modified.Revision = revision
	modified.Previous = 0
	modified.Full = true
	return &Container{
		Modified: modified,
		Complete: modified.Clone(),
	}
}

// the logical view of a container that shares the old content
func completeView(combined *bucket.Leaf, bucketKey uint64, revision uint64) *bucket.Leaf {
	complete := combined.Clone()
	complete.BucketKey = bucketKey
	complete.Revision = revision
	return complete
}
