// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package revisioning

import (
	"github.com/bitmark-inc/revstore/bucket"
)

// FullDump - every written leaf is a complete copy
type FullDump struct {
	depth int
}

func (s *FullDump) Name() string                { return FullDumpName }
func (s *FullDump) RestoreDepth() int           { return s.depth }
func (s *FullDump) MustBeFull(uint64, int) bool { return true }

// CombineForRead - the head is already complete
func (s *FullDump) CombineForRead(chain []*bucket.Leaf) (*bucket.Leaf, error) {
	return combine(chain, s.depth)
}

// CombineForWrite - always a full copy
func (s *FullDump) CombineForWrite(chain []*bucket.Leaf, bucketKey uint64, revision uint64, _ bool) (*Container, error) {
	combined, err := combine(chain, s.depth)
	if nil != err {
		return nil, err
	}
	return materialise(combined, bucketKey, revision), nil
}
