// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
)

// ReadTransaction - read access pinned to one committed revision
type ReadTransaction struct {
	id      uint64
	session *Session
	view    *view
	closed  atomic.Bool
}

// Get - the item stored under a key
//
// deleted items and keys never written are reported as not found
func (trx *ReadTransaction) Get(itemKey uint64) (bucket.Item, bool, error) {
	if trx.closed.Load() {
		return nil, false, fault.ErrTransactionClosed
	}
	return trx.view.get(itemKey)
}

// Revision - the revision this transaction reads
func (trx *ReadTransaction) Revision() (uint64, error) {
	if trx.closed.Load() {
		return 0, fault.ErrTransactionClosed
	}
	return trx.view.revisionRoot.Revision, nil
}

// MaxItemKey - highest item key allocated in this revision
func (trx *ReadTransaction) MaxItemKey() (uint64, error) {
	if trx.closed.Load() {
		return 0, fault.ErrTransactionClosed
	}
	return trx.view.revisionRoot.MaxItemKey, nil
}

// Timestamp - when this revision was committed
func (trx *ReadTransaction) Timestamp() (time.Time, error) {
	if trx.closed.Load() {
		return time.Time{}, fault.ErrTransactionClosed
	}
	return time.Unix(trx.view.revisionRoot.Timestamp, 0).UTC(), nil
}

// Meta - a metadata entry of this revision
func (trx *ReadTransaction) Meta(key string) ([]byte, bool, error) {
	if trx.closed.Load() {
		return nil, false, fault.ErrTransactionClosed
	}
	value, found := trx.view.metaEntry(key)
	return value, found, nil
}

// IsClosed - true after Close or after the session closed
func (trx *ReadTransaction) IsClosed() bool {
	return trx.closed.Load()
}

// Close - release the transaction; closing twice is allowed
func (trx *ReadTransaction) Close() error {
	if !trx.closed.CompareAndSwap(false, true) {
		return nil
	}
	trx.view.cache.purge()
	trx.session.deregister(trx.id)
	return nil
}

func (trx *ReadTransaction) forceClose() {
	if trx.closed.CompareAndSwap(false, true) {
		trx.view.cache.purge()
	}
}
