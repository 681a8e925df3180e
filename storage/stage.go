// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
	"github.com/bitmark-inc/revstore/revisioning"
)

// stage - everything needed to produce the next revision
type stage struct {
	tree         *tree
	reader       backend.Reader
	log          *trxLog
	root         *bucket.GlobalRoot
	revisionRoot *bucket.RevisionRoot
	meta         *bucket.Meta
}

// revision being built
func (s *stage) revision() uint64 {
	return s.root.Revision
}

// copy the indirect buckets from a root reference down to the level
// above the leaves into the log, re-pointing each parent at its new
// child; returns the lowest indirect bucket
func (s *stage) preparePath(revisionTree bool, root *bucket.Reference, sequenceKey uint64) (*bucket.Indirect, error) {
	layout := s.tree.layout
	if !layout.InRange(sequenceKey) {
		return nil, fault.ErrKeyOutOfRange
	}
	offsets := layout.PathOffsets(sequenceKey)

	var parent *bucket.Indirect
	for level := 0; level < layout.Depth(); level += 1 {
		key := logKey{
			revisionTree: revisionTree,
			level:        level,
			node:         layout.NodeKey(level, sequenceKey),
		}
		if e, ok := s.log.get(key); ok {
			parent = e.indirect
			continue
		}

		ref := *root
		if level > 0 {
			ref = parent.References[offsets[level-1]]
		}

		var indirect *bucket.Indirect
		if ref.IsNull() {
			indirect = bucket.NewIndirect(s.root.NextKey(), layout.Fanout(level))
		} else {
			old, err := s.tree.fetchIndirect(s.reader, ref, level)
			if nil != err {
				return nil, err
			}
			indirect = old.Clone()
			indirect.BucketKey = s.root.NextKey()
		}
		s.log.putIndirect(key, indirect)

		// digests are filled in by flush
		link := bucket.Reference{Key: indirect.BucketKey}
		if 0 == level {
			*root = link
		} else {
			parent.References[offsets[level-1]] = link
		}
		parent = indirect
	}
	return parent, nil
}

// stage a writable copy of the leaf holding a sequence key
func (s *stage) prepareLeaf(sequenceKey uint64) (*revisioning.Container, error) {
	layout := s.tree.layout
	key := logKey{
		revisionTree: false,
		level:        layout.Depth(),
		node:         sequenceKey,
	}
	if e, ok := s.log.get(key); ok {
		return e.leaf, nil
	}

	parent, err := s.preparePath(false, &s.revisionRoot.Data, sequenceKey)
	if nil != err {
		return nil, err
	}
	offsets := layout.PathOffsets(sequenceKey)
	offset := offsets[len(offsets)-1]
	head := parent.References[offset]

	var container *revisioning.Container
	if head.IsNull() {
		leaf := bucket.NewLeaf(s.root.NextKey(), sequenceKey, s.revision(), layout.SlotsPerLeaf())
		leaf.Full = true
		container = &revisioning.Container{
			Modified: leaf,
			Complete: leaf.Clone(),
		}
	} else {
		chain, err := s.tree.chain(s.reader, head, sequenceKey)
		if nil != err {
			return nil, err
		}
		revision := s.revision()
		makeFull := s.tree.strategy.MustBeFull(revision, len(chain))
		container, err = s.tree.strategy.CombineForWrite(chain, s.root.NextKey(), revision, makeFull)
		if nil != err {
			return nil, err
		}
	}

	parent.References[offset] = bucket.Reference{Key: container.Modified.BucketKey}
	s.log.putLeaf(key, container)
	return container, nil
}

// stage the slot of the revision tree that will hold the new
// revision root
func (s *stage) prepareRevisionSlot() error {
	_, err := s.preparePath(true, &s.root.Revisions, s.revision())
	return err
}

// write every staged bucket, children before parents, computing
// reference digests on the way up; the global root goes last
func (s *stage) flush(w backend.Writer) error {
	layout := s.tree.layout

	s.revisionRoot.Timestamp = time.Now().UTC().Unix()

	err := s.flushTree(w, false, &s.revisionRoot.Data)
	if nil != err {
		return err
	}

	ref, err := write(w, s.meta)
	if nil != err {
		return err
	}
	s.revisionRoot.Meta = ref

	ref, err = write(w, s.revisionRoot)
	if nil != err {
		return err
	}
	node, offset := layout.Parent(layout.Depth(), s.revision())
	e, ok := s.log.get(logKey{revisionTree: true, level: layout.Depth() - 1, node: node})
	if !ok {
		return errors.Wrapf(fault.ErrRevisionNotFound, "revision tree path not staged: %d", s.revision())
	}
	e.indirect.References[offset] = ref

	err = s.flushTree(w, true, &s.root.Revisions)
	if nil != err {
		return err
	}

	if _, err := write(w, s.root); nil != err {
		return err
	}
	return w.WriteGlobalRoot(s.root)
}

func (s *stage) flushTree(w backend.Writer, revisionTree bool, root *bucket.Reference) error {
	layout := s.tree.layout
	for _, e := range s.log.entries(revisionTree) {
		ref, err := write(w, e.modified())
		if nil != err {
			return err
		}
		if 0 == e.key.level {
			*root = ref
			continue
		}
		node, offset := layout.Parent(e.key.level, e.key.node)
		parent, ok := s.log.get(logKey{revisionTree: revisionTree, level: e.key.level - 1, node: node})
		if !ok {
			return errors.Wrapf(fault.ErrBucketMissing, "parent of: %s not staged", e.key)
		}
		parent.indirect.References[offset] = ref
	}
	return nil
}

// write one bucket and return a reference to it
func write(w backend.Writer, b bucket.Bucket) (bucket.Reference, error) {
	ref, err := bucket.ReferenceTo(b)
	if nil != err {
		return bucket.Reference{}, err
	}
	if err := w.Write(b); nil != err {
		return bucket.Reference{}, err
	}
	return ref, nil
}
