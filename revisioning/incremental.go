// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package revisioning

import (
	"github.com/bitmark-inc/revstore/bucket"
)

// Incremental - full snapshot every RestoreDepth revisions, only the
// changed slots in between
type Incremental struct {
	depth int
}

func (s *Incremental) Name() string      { return IncrementalName }
func (s *Incremental) RestoreDepth() int { return s.depth }

// MustBeFull - revision interval, or the chain is already as long as
// the restore depth allows
func (s *Incremental) MustBeFull(revision uint64, chainLength int) bool {
	return 0 == revision%uint64(s.depth) || chainLength >= s.depth
}

// CombineForRead - overlay the chain into one full leaf
func (s *Incremental) CombineForRead(chain []*bucket.Leaf) (*bucket.Leaf, error) {
	return combine(chain, s.depth)
}

// CombineForWrite - either a full copy or an empty leaf that points
// at the current head
func (s *Incremental) CombineForWrite(chain []*bucket.Leaf, bucketKey uint64, revision uint64, makeFull bool) (*Container, error) {
	combined, err := combine(chain, s.depth)
	if nil != err {
		return nil, err
	}
	if makeFull {
		return materialise(combined, bucketKey, revision), nil
	}

	modified := bucket.NewLeaf(bucketKey, combined.SequenceKey, revision, len(combined.Slots))
	modified.Previous = chain[0].BucketKey

	return &Container{
		Modified: modified,
		Complete: completeView(combined, bucketKey, revision),
	}, nil
}
