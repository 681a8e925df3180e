// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
	"github.com/bitmark-inc/revstore/revisioning"
)

// a slot handed out by PrepareForModification
type modification struct {
	itemKey   uint64
	offset    int
	container *revisioning.Container
	slot      bucket.Slot
}

// WriteTransaction - stages the next revision
//
// reads see the staged state; nothing reaches the backend until
// Commit
type WriteTransaction struct {
	sync.Mutex

	id      uint64
	session *Session
	writer  backend.Writer

	base    *bucket.GlobalRoot
	view    *view
	stage   *stage
	pending *modification
	dirty   bool
	failed  error
	closed  atomic.Bool
}

// start staging the revision after the given committed root
func (trx *WriteTransaction) setUp(base *bucket.GlobalRoot) error {
	s := trx.session

	v, err := newView(s.tree, s.reader, base, base.Revision, s.cacheSize)
	if nil != err {
		return err
	}

	root := base.Clone()
	root.Revision = base.Revision + 1
	root.BucketKey = root.NextKey()

	revisionRoot := v.revisionRoot.Clone()
	revisionRoot.BucketKey = root.NextKey()
	revisionRoot.Revision = root.Revision

	st := &stage{
		tree:         s.tree,
		reader:       s.reader,
		log:          newLog(),
		root:         root,
		revisionRoot: revisionRoot,
		meta:         v.meta.Clone(root.NextKey()),
	}
	if err := st.prepareRevisionSlot(); nil != err {
		return err
	}

	trx.base = base
	trx.view = v
	trx.stage = st
	trx.pending = nil
	trx.dirty = false
	trx.failed = nil
	return nil
}

func (trx *WriteTransaction) check() error {
	if trx.closed.Load() {
		return fault.ErrTransactionClosed
	}
	return trx.failed
}

// Revision - the revision that Commit will create
func (trx *WriteTransaction) Revision() (uint64, error) {
	trx.Lock()
	defer trx.Unlock()
	if err := trx.check(); nil != err {
		return 0, err
	}
	return trx.stage.revision(), nil
}

// MaxItemKey - highest item key allocated so far
func (trx *WriteTransaction) MaxItemKey() (uint64, error) {
	trx.Lock()
	defer trx.Unlock()
	if err := trx.check(); nil != err {
		return 0, err
	}
	return trx.stage.revisionRoot.MaxItemKey, nil
}

// PrepareForModification - a mutable slot for an allocated item key
//
// the change takes effect at FinishModification; only one slot may
// be prepared at a time
func (trx *WriteTransaction) PrepareForModification(itemKey uint64) (*bucket.Slot, error) {
	trx.Lock()
	defer trx.Unlock()
	return trx.prepare(itemKey)
}

func (trx *WriteTransaction) prepare(itemKey uint64) (*bucket.Slot, error) {
	if err := trx.check(); nil != err {
		return nil, err
	}
	if nil != trx.pending {
		return nil, fault.ErrModificationInProgress
	}
	if itemKey > trx.stage.revisionRoot.MaxItemKey {
		return nil, errors.Wrapf(fault.ErrItemKeyNotAllocated, "item key: %d", itemKey)
	}

	layout := trx.session.tree.layout
	if !layout.ItemKeyInRange(itemKey) {
		return nil, fault.ErrKeyOutOfRange
	}
	sequenceKey, offset := layout.Locate(itemKey)

	container, err := trx.stage.prepareLeaf(sequenceKey)
	if nil != err {
		return nil, err
	}
	trx.pending = &modification{
		itemKey:   itemKey,
		offset:    offset,
		container: container,
		slot:      container.Complete.Slots[offset].Clone(),
	}
	return &trx.pending.slot, nil
}

// FinishModification - store the prepared slot
func (trx *WriteTransaction) FinishModification() error {
	trx.Lock()
	defer trx.Unlock()
	return trx.finish()
}

func (trx *WriteTransaction) finish() error {
	if err := trx.check(); nil != err {
		return err
	}
	if nil == trx.pending {
		return fault.ErrNoModificationInProgress
	}
	p := trx.pending
	trx.pending = nil
	if err := p.container.Set(p.offset, p.slot); nil != err {
		return err
	}
	trx.dirty = true
	return nil
}

// SetItem - store an item under a newly allocated key
func (trx *WriteTransaction) SetItem(item bucket.Item) (uint64, error) {
	trx.Lock()
	defer trx.Unlock()

	if err := trx.check(); nil != err {
		return 0, err
	}
	if nil != trx.pending {
		return 0, fault.ErrModificationInProgress
	}

	revisionRoot := trx.stage.revisionRoot
	itemKey := revisionRoot.MaxItemKey + 1
	if !trx.session.tree.layout.ItemKeyInRange(itemKey) {
		return 0, fault.ErrKeyOutOfRange
	}

	revisionRoot.MaxItemKey = itemKey
	slot, err := trx.prepare(itemKey)
	if nil != err {
		revisionRoot.MaxItemKey = itemKey - 1
		return 0, err
	}
	slot.Set(append(bucket.Item(nil), item...))
	if err := trx.finish(); nil != err {
		return 0, err
	}
	return itemKey, nil
}

// RemoveItem - replace an item with a tombstone
func (trx *WriteTransaction) RemoveItem(itemKey uint64) error {
	trx.Lock()
	defer trx.Unlock()

	slot, err := trx.prepare(itemKey)
	if nil != err {
		return err
	}
	slot.Remove()
	return trx.finish()
}

// GetItem - read including staged changes
func (trx *WriteTransaction) GetItem(itemKey uint64) (bucket.Item, bool, error) {
	trx.Lock()
	defer trx.Unlock()

	if err := trx.check(); nil != err {
		return nil, false, err
	}
	if itemKey > trx.stage.revisionRoot.MaxItemKey {
		return nil, false, nil
	}

	layout := trx.session.tree.layout
	sequenceKey, offset := layout.Locate(itemKey)
	e, ok := trx.stage.log.get(logKey{level: layout.Depth(), node: sequenceKey})
	if !ok {
		return trx.view.get(itemKey)
	}
	item, found := visible(itemKey, e.leaf.Complete.Slots[offset])
	return item, found, nil
}

// Meta - a metadata entry including staged changes
func (trx *WriteTransaction) Meta(key string) ([]byte, bool, error) {
	trx.Lock()
	defer trx.Unlock()

	if err := trx.check(); nil != err {
		return nil, false, err
	}
	value, ok := trx.stage.meta.Entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// SetMeta - stage a metadata entry
func (trx *WriteTransaction) SetMeta(key string, value []byte) error {
	trx.Lock()
	defer trx.Unlock()

	if err := trx.check(); nil != err {
		return err
	}
	trx.stage.meta.Entries[key] = append([]byte(nil), value...)
	trx.dirty = true
	return nil
}

// DeleteMeta - stage removal of a metadata entry
func (trx *WriteTransaction) DeleteMeta(key string) error {
	trx.Lock()
	defer trx.Unlock()

	if err := trx.check(); nil != err {
		return err
	}
	if _, ok := trx.stage.meta.Entries[key]; ok {
		delete(trx.stage.meta.Entries, key)
		trx.dirty = true
	}
	return nil
}

// HasChanges - true if there is anything to commit or abort
func (trx *WriteTransaction) HasChanges() bool {
	trx.Lock()
	defer trx.Unlock()
	return trx.hasChanges()
}

func (trx *WriteTransaction) hasChanges() bool {
	return trx.dirty || nil != trx.pending
}

// Commit - write the staged revision and make it visible
//
// on failure nothing becomes visible and the staged changes are
// kept, so Commit can be retried or the changes dropped with Abort
func (trx *WriteTransaction) Commit() error {
	trx.Lock()
	defer trx.Unlock()

	if err := trx.check(); nil != err {
		return err
	}
	if nil != trx.pending {
		return fault.ErrModificationInProgress
	}

	s := trx.session
	err := s.committer.submit(trx.stage, trx.writer)
	if nil != err {
		return err
	}

	root := trx.stage.root
	s.publish(root)
	trx.dirty = false

	// continue from the revision just written; if that is impossible
	// the commit still stands and every later operation fails
	if err := trx.setUp(root); nil != err {
		s.log.Errorf("revision: %d  cannot stage next revision: %s", root.Revision, err)
		trx.failed = err
	}
	return nil
}

// Abort - drop all staged changes and restart from the last
// committed revision
func (trx *WriteTransaction) Abort() error {
	trx.Lock()
	defer trx.Unlock()

	if err := trx.check(); nil != err {
		return err
	}
	trx.writer.Abort()
	trx.stage.log.clear()
	return trx.setUp(trx.session.root.Load())
}

// Close - release the write slot; staged changes must have been
// committed or aborted first
func (trx *WriteTransaction) Close() error {
	trx.Lock()
	defer trx.Unlock()

	if trx.closed.Load() {
		return nil
	}
	if trx.hasChanges() {
		return fault.ErrUncommittedChanges
	}
	if !trx.closed.CompareAndSwap(false, true) {
		return nil
	}
	trx.session.deregister(trx.id)
	trx.release()
	return nil
}

// IsClosed - true after Close or after the session closed
func (trx *WriteTransaction) IsClosed() bool {
	return trx.closed.Load()
}

// waits for any operation in progress, including a commit
func (trx *WriteTransaction) forceClose() {
	trx.Lock()
	defer trx.Unlock()

	if trx.closed.CompareAndSwap(false, true) {
		trx.writer.Abort()
		trx.pending = nil
		trx.dirty = false
		trx.release()
	}
}

func (trx *WriteTransaction) release() {
	trx.writer.Close()
	if nil != trx.view {
		trx.view.cache.purge()
	}
	trx.session.writing.Store(false)
}
