// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package revisioning

import (
	"github.com/bitmark-inc/revstore/bucket"
)

// Differential - every non-full leaf holds all changes since the last
// full leaf and points straight at it, so chains never exceed two
type Differential struct {
	depth int
}

func (s *Differential) Name() string      { return DifferentialName }
func (s *Differential) RestoreDepth() int { return s.depth }

// MustBeFull - on the revision interval, or if a short restore depth
// is already used up
func (s *Differential) MustBeFull(revision uint64, chainLength int) bool {
	return 0 == revision%uint64(s.depth) || chainLength >= s.depth
}

// CombineForRead - full leaf overlaid by at most one differential
func (s *Differential) CombineForRead(chain []*bucket.Leaf) (*bucket.Leaf, error) {
	return combine(chain, s.depth)
}

// CombineForWrite - a full copy, or a copy of the current
// differential re-pointed at the full leaf
func (s *Differential) CombineForWrite(chain []*bucket.Leaf, bucketKey uint64, revision uint64, makeFull bool) (*Container, error) {
	combined, err := combine(chain, s.depth)
	if nil != err {
		return nil, err
	}
	if makeFull {
		return materialise(combined, bucketKey, revision), nil
	}

	full := chain[len(chain)-1]
	modified := bucket.NewLeaf(bucketKey, combined.SequenceKey, revision, len(combined.Slots))
	modified.Previous = full.BucketKey

	// carry all differentials between the head and the full leaf
	for i := len(chain) - 2; i >= 0; i -= 1 {
		for n, slot := range chain[i].Slots {
			if !slot.IsEmpty() {
				modified.Slots[n] = slot.Clone()
			}
		}
	}

	return &Container{
		Modified: modified,
		Complete: completeView(combined, bucketKey, revision),
	}, nil
}
