// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package badger - backend storing buckets in a Badger database
package badger

import (
	"encoding/binary"
	"errors"
	"os"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/dgraph-io/badger/v4"
	pkgerrors "github.com/pkg/errors"

	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentVersion = 0x100

// Database - a Badger backed resource
type Database struct {
	sync.Mutex
	db    *badger.DB
	dir   string
	inUse bool
}

// badger logs through a bitmark logger channel
type badgerLogger struct {
	log *logger.L
}

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.log.Errorf(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.log.Warnf(format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.log.Infof(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.log.Debugf(format, args...) }

// Open - open or create a database directory
func Open(dir string) (*Database, error) {
	return open(badger.DefaultOptions(dir), dir)
}

// OpenMemory - a volatile database
func OpenMemory() (*Database, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), "")
}

func open(opts badger.Options, dir string) (*Database, error) {
	opts.Logger = &badgerLogger{log: logger.New("badger")}
	db, err := badger.Open(opts)
	if nil != err {
		return nil, fault.NewIOError("open", err)
	}

	err = db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(versionKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			buffer := make([]byte, 4)
			binary.BigEndian.PutUint32(buffer, currentVersion)
			return txn.Set(versionKey, buffer)
		} else if nil != err {
			return fault.NewIOError("open", err)
		}
		return item.Value(func(value []byte) error {
			if 4 != len(value) {
				return pkgerrors.Wrapf(fault.ErrUnsupportedVersion, "version length: %d", len(value))
			}
			if version := binary.BigEndian.Uint32(value); version > currentVersion {
				return pkgerrors.Wrapf(fault.ErrUnsupportedVersion, "database version: %d > current version: %d", version, currentVersion)
			}
			return nil
		})
	})
	if nil != err {
		db.Close()
		return nil, err
	}

	return &Database{
		db:  db,
		dir: dir,
	}, nil
}

// Reader - read access to committed data
func (d *Database) Reader() (backend.Reader, error) {
	if nil == d.handle() {
		return nil, fault.ErrSessionClosed
	}
	return &reader{database: d}, nil
}

// Writer - exclusive write access
func (d *Database) Writer() (backend.Writer, error) {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil, fault.ErrSessionClosed
	}
	if d.inUse {
		return nil, fault.ErrWriterInTransaction
	}
	d.inUse = true

	return &writer{
		reader:  reader{database: d},
		records: make(map[string][]byte),
		staged:  make(map[uint64][]byte),
	}, nil
}

// Truncate - close and remove all data
func (d *Database) Truncate() error {
	d.Lock()
	defer d.Unlock()

	if nil != d.db {
		d.db.Close()
		d.db = nil
	}
	if "" == d.dir {
		return nil
	}
	return fault.NewIOError("truncate", os.RemoveAll(d.dir))
}

// Close - release the database
func (d *Database) Close() error {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return fault.NewIOError("close", err)
}

func (d *Database) handle() *badger.DB {
	d.Lock()
	defer d.Unlock()
	return d.db
}

func (d *Database) release() {
	d.Lock()
	d.inUse = false
	d.Unlock()
}

// Buckets - visit every stored bucket in key order
func (d *Database) Buckets(f func(key uint64, b bucket.Bucket) error) error {
	db := d.handle()
	if nil == db {
		return fault.ErrSessionClosed
	}
	prefix := []byte{backend.PrefixBucket}
	return db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: true,
			PrefetchSize:   100,
			Prefix:         prefix,
		})
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key, ok := backend.ParseBucketKey(item.Key())
			if !ok {
				continue
			}
			value, err := item.ValueCopy(nil)
			if nil != err {
				return fault.NewIOError("iterate", err)
			}
			b, err := bucket.Decode(value)
			if nil != err {
				return err
			}
			if err := f(key, b); nil != err {
				return err
			}
		}
		return nil
	})
}
