// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package badger

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
	pkgerrors "github.com/pkg/errors"

	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
)

type reader struct {
	database *Database
}

// buckets are flushed before records so that the global root is
// only replaced once everything it references is stored
type writer struct {
	reader
	records map[string][]byte
	staged  map[uint64][]byte
	closed  bool
}

// fetch a record, absent records are not an error
func (r *reader) get(op string, key []byte) ([]byte, bool, error) {
	db := r.database.handle()
	if nil == db {
		return nil, false, fault.ErrSessionClosed
	}

	var data []byte
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if nil != err {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	} else if nil != err {
		return nil, false, fault.NewIOError(op, err)
	}
	return data, true, nil
}

func (r *reader) Read(bucketKey uint64) (bucket.Bucket, error) {
	data, found, err := r.get("read", backend.BucketKey(bucketKey))
	if nil != err {
		return nil, pkgerrors.WithMessagef(err, "bucket: %d", bucketKey)
	}
	if !found {
		return nil, pkgerrors.Wrapf(fault.ErrBucketNotFound, "bucket: %d", bucketKey)
	}
	return bucket.Decode(data)
}

func (r *reader) ReadGlobalRoot() (*bucket.GlobalRoot, error) {
	data, found, err := r.get("read root", backend.RootKey)
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fault.ErrNotBootstrapped
	}
	b, err := bucket.Decode(data)
	if nil != err {
		return nil, err
	}
	root, ok := b.(*bucket.GlobalRoot)
	if !ok {
		return nil, pkgerrors.Wrapf(fault.ErrInvalidBucketKind, "root is: %s", b.Kind())
	}
	return root, nil
}

func (r *reader) ReadDescriptor() (*bucket.Descriptor, error) {
	data, found, err := r.get("read descriptor", backend.DescriptorKey)
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fault.ErrDescriptorNotFound
	}
	return bucket.DecodeDescriptor(data)
}

func (r *reader) Close() error {
	return nil
}

// staged buckets are visible to the writer itself
func (w *writer) Read(bucketKey uint64) (bucket.Bucket, error) {
	if data, ok := w.staged[bucketKey]; ok {
		return bucket.Decode(data)
	}
	return w.reader.Read(bucketKey)
}

func (w *writer) Write(b bucket.Bucket) error {
	if w.closed {
		return fault.ErrTransactionClosed
	}
	data, err := bucket.Encode(b)
	if nil != err {
		return err
	}
	w.staged[b.Key()] = data
	return nil
}

func (w *writer) WriteGlobalRoot(root *bucket.GlobalRoot) error {
	if w.closed {
		return fault.ErrTransactionClosed
	}
	data, err := bucket.Encode(root)
	if nil != err {
		return err
	}
	w.records[string(backend.RootKey)] = data
	return nil
}

func (w *writer) WriteDescriptor(d *bucket.Descriptor) error {
	if w.closed {
		return fault.ErrTransactionClosed
	}
	data, err := bucket.EncodeDescriptor(d)
	if nil != err {
		return err
	}
	w.records[string(backend.DescriptorKey)] = data
	return nil
}

// Commit - store the staged buckets, then the root records
//
// the buckets go through a write batch, which splits to fit badger's
// transaction limits; they all carry fresh keys that nothing
// references until the final small update replaces the global root
func (w *writer) Commit() error {
	if w.closed {
		return fault.ErrTransactionClosed
	}
	db := w.database.handle()
	if nil == db {
		return fault.ErrSessionClosed
	}

	if 0 != len(w.staged) {
		wb := db.NewWriteBatch()
		defer wb.Cancel()
		for key, data := range w.staged {
			if err := wb.Set(backend.BucketKey(key), data); nil != err {
				return fault.NewIOError("commit buckets", err)
			}
		}
		if err := wb.Flush(); nil != err {
			return fault.NewIOError("commit buckets", err)
		}
	}

	err := db.Update(func(txn *badger.Txn) error {
		for k, v := range w.records {
			if err := txn.Set([]byte(k), v); nil != err {
				return err
			}
		}
		return nil
	})
	if nil != err {
		return fault.NewIOError("commit", err)
	}
	w.reset()
	return nil
}

func (w *writer) Abort() {
	w.reset()
}

func (w *writer) reset() {
	w.records = make(map[string][]byte)
	w.staged = make(map[uint64][]byte)
}

func (w *writer) Close() error {
	if w.closed {
		return nil
	}
	w.reset()
	w.closed = true
	w.database.release()
	return nil
}
