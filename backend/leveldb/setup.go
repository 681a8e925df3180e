// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package leveldb - backend storing buckets in a LevelDB database
package leveldb

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentVersion = 0x100
)

// commits must reach the disk before the new root is published
var ldbWriteOptions = ldb_opt.WriteOptions{Sync: true}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Database - a LevelDB backed resource
type Database struct {
	sync.Mutex
	db       *leveldb.DB
	name     string
	readOnly bool
	inUse    bool
}

// Open - open or create a database directory
func Open(name string, readOnly bool) (*Database, error) {
	db, version, err := getDB(name, readOnly)
	if nil != err {
		return nil, fault.NewIOError("open", err)
	}

	// ensure no database downgrade
	if version > currentVersion {
		db.Close()
		return nil, errors.Wrapf(fault.ErrUnsupportedVersion, "database version: %d > current version: %d", version, currentVersion)
	}

	if 0 == version {
		if readOnly {
			db.Close()
			return nil, fault.ErrNotBootstrapped
		}

		// database was empty so tag as current version
		err = putVersion(db, currentVersion)
		if nil != err {
			db.Close()
			return nil, fault.NewIOError("open", err)
		}
	}

	return &Database{
		db:       db,
		name:     name,
		readOnly: readOnly,
	}, nil
}

// OpenMemory - a volatile database
func OpenMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, fault.NewIOError("open", err)
	}
	if err := putVersion(db, currentVersion); nil != err {
		db.Close()
		return nil, fault.NewIOError("open", err)
	}
	return &Database{db: db}, nil
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
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
	if d.readOnly {
		return nil, fault.ErrReadOnly
	}
	if d.inUse {
		return nil, fault.ErrWriterInTransaction
	}
	d.inUse = true

	return &writer{
		reader: reader{database: d},
		batch:  new(leveldb.Batch),
		staged: make(map[uint64][]byte),
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
	if "" == d.name {
		return nil
	}
	return fault.NewIOError("truncate", os.RemoveAll(d.name))
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

func (d *Database) handle() *leveldb.DB {
	d.Lock()
	defer d.Unlock()
	return d.db
}

func (d *Database) release() {
	d.Lock()
	d.inUse = false
	d.Unlock()
}
