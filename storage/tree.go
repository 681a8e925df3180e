// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/revstore/address"
	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
	"github.com/bitmark-inc/revstore/revisioning"
)

// tree - traversal of committed buckets for one resource
type tree struct {
	layout   address.Layout
	strategy revisioning.Strategy
	verify   bool
	log      *logger.L
}

// read a bucket through a reference and check its digest
func (t *tree) fetch(r backend.Reader, ref bucket.Reference) (bucket.Bucket, error) {
	b, err := r.Read(ref.Key)
	if nil != err {
		if fault.IsErrNotFound(err) {
			// a non-null reference to a missing bucket is corruption
			t.log.Criticalf("missing bucket: %d", ref.Key)
			return nil, errors.Wrapf(fault.ErrBucketMissing, "bucket: %d", ref.Key)
		}
		return nil, err
	}
	if t.verify && 0 != len(ref.Hash) {
		actual, err := bucket.ReferenceTo(b)
		if nil != err {
			return nil, err
		}
		if !ref.Equal(actual) {
			t.log.Criticalf("hash mismatch: bucket: %d  expected: %x  actual: %x", ref.Key, ref.Hash, actual.Hash)
			return nil, errors.Wrapf(fault.ErrHashMismatch, "bucket: %d", ref.Key)
		}
	}
	return b, nil
}

func (t *tree) fetchIndirect(r backend.Reader, ref bucket.Reference, level int) (*bucket.Indirect, error) {
	b, err := t.fetch(r, ref)
	if nil != err {
		return nil, err
	}
	indirect, ok := b.(*bucket.Indirect)
	if !ok {
		return nil, errors.Wrapf(fault.ErrInvalidBucketKind, "bucket: %d  is: %s  expected: indirect", ref.Key, b.Kind())
	}
	if len(indirect.References) != t.layout.Fanout(level) {
		return nil, errors.Wrapf(fault.ErrSlotOutOfRange, "bucket: %d  references: %d", ref.Key, len(indirect.References))
	}
	return indirect, nil
}

// follow a tree from its root reference down to the reference held
// for a sequence key; a null result means never materialised
func (t *tree) lookup(r backend.Reader, root bucket.Reference, sequenceKey uint64) (bucket.Reference, error) {
	if !t.layout.InRange(sequenceKey) {
		return bucket.Reference{}, fault.ErrKeyOutOfRange
	}
	offsets := t.layout.PathOffsets(sequenceKey)
	ref := root
	for level, offset := range offsets {
		if ref.IsNull() {
			return ref, nil
		}
		indirect, err := t.fetchIndirect(r, ref, level)
		if nil != err {
			return bucket.Reference{}, err
		}
		ref = indirect.References[offset]
	}
	return ref, nil
}

// locate the root of a committed revision
func (t *tree) revisionRoot(r backend.Reader, global *bucket.GlobalRoot, revision uint64) (*bucket.RevisionRoot, error) {
	ref, err := t.lookup(r, global.Revisions, revision)
	if nil != err {
		return nil, err
	}
	if ref.IsNull() {
		return nil, errors.Wrapf(fault.ErrRevisionNotFound, "revision: %d", revision)
	}
	b, err := t.fetch(r, ref)
	if nil != err {
		return nil, err
	}
	root, ok := b.(*bucket.RevisionRoot)
	if !ok {
		return nil, errors.Wrapf(fault.ErrInvalidBucketKind, "bucket: %d  is: %s  expected: revision root", ref.Key, b.Kind())
	}
	if revision != root.Revision {
		return nil, errors.Wrapf(fault.ErrRevisionNotFound, "revision: %d  found: %d", revision, root.Revision)
	}
	return root, nil
}

// load the metadata bucket of a revision
func (t *tree) meta(r backend.Reader, ref bucket.Reference) (*bucket.Meta, error) {
	if ref.IsNull() {
		return bucket.NewMeta(0), nil
	}
	b, err := t.fetch(r, ref)
	if nil != err {
		return nil, err
	}
	meta, ok := b.(*bucket.Meta)
	if !ok {
		return nil, errors.Wrapf(fault.ErrInvalidBucketKind, "bucket: %d  is: %s  expected: meta", ref.Key, b.Kind())
	}
	return meta, nil
}

// read a leaf chain newest first, stopping at the first full leaf
func (t *tree) chain(r backend.Reader, head bucket.Reference, sequenceKey uint64) ([]*bucket.Leaf, error) {
	depth := t.strategy.RestoreDepth()
	chain := make([]*bucket.Leaf, 0, depth)

	ref := head
	for {
		if len(chain) >= depth {
			t.log.Criticalf("sequence: %d  chain exceeds restore depth: %d", sequenceKey, depth)
			return nil, errors.Wrapf(fault.ErrChainTooLong, "sequence: %d", sequenceKey)
		}
		b, err := t.fetch(r, ref)
		if nil != err {
			return nil, err
		}
		leaf, ok := b.(*bucket.Leaf)
		if !ok {
			return nil, errors.Wrapf(fault.ErrInvalidBucketKind, "bucket: %d  is: %s  expected: leaf", ref.Key, b.Kind())
		}
		if sequenceKey != leaf.SequenceKey || t.layout.SlotsPerLeaf() != len(leaf.Slots) {
			return nil, errors.Wrapf(fault.ErrCorruptBucket, "bucket: %d  sequence: %d  slots: %d", ref.Key, leaf.SequenceKey, len(leaf.Slots))
		}
		chain = append(chain, leaf)
		if leaf.Full {
			break
		}
		if 0 == leaf.Previous {
			t.log.Criticalf("sequence: %d  chain broken at bucket: %d", sequenceKey, leaf.BucketKey)
			return nil, errors.Wrapf(fault.ErrChainBroken, "sequence: %d  bucket: %d", sequenceKey, leaf.BucketKey)
		}
		ref = bucket.Reference{Key: leaf.Previous}
	}
	t.log.Debugf("sequence: %d  chain length: %d", sequenceKey, len(chain))
	return chain, nil
}
