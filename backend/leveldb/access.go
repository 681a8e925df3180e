// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package leveldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
)

type reader struct {
	database *Database
}

type writer struct {
	reader
	batch  *leveldb.Batch
	staged map[uint64][]byte
	closed bool
}

// fetch a record, absent records are not an error
func (r *reader) get(op string, key []byte) ([]byte, bool, error) {
	db := r.database.handle()
	if nil == db {
		return nil, false, fault.ErrSessionClosed
	}
	data, err := db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	} else if nil != err {
		return nil, false, fault.NewIOError(op, err)
	}
	return data, true, nil
}

func (r *reader) Read(bucketKey uint64) (bucket.Bucket, error) {
	data, found, err := r.get("read", backend.BucketKey(bucketKey))
	if nil != err {
		return nil, errors.WithMessagef(err, "bucket: %d", bucketKey)
	}
	if !found {
		return nil, errors.Wrapf(fault.ErrBucketNotFound, "bucket: %d", bucketKey)
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
		return nil, errors.Wrapf(fault.ErrInvalidBucketKind, "root is: %s", b.Kind())
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
	w.batch.Put(backend.BucketKey(b.Key()), data)
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
	w.batch.Put(backend.RootKey, data)
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
	w.batch.Put(backend.DescriptorKey, data)
	return nil
}

// Commit - write the whole batch atomically
func (w *writer) Commit() error {
	if w.closed {
		return fault.ErrTransactionClosed
	}
	db := w.database.handle()
	if nil == db {
		return fault.ErrSessionClosed
	}
	err := db.Write(w.batch, &ldbWriteOptions)
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
	w.batch.Reset()
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
