// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package leveldb

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
)

// Element - a stored bucket with its raw size
type Element struct {
	Key    uint64
	Size   int
	Bucket bucket.Bucket
}

// FetchCursor - walks stored buckets in bucket key order
type FetchCursor struct {
	database *Database
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor to the first bucket
func (d *Database) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		database: d,
		maxRange: util.Range{
			Start: []byte{backend.PrefixBucket},     // Start of key range, included in the range
			Limit: []byte{backend.PrefixBucket + 1}, // Limit of key range, excluded from the range
		},
	}
}

// Seek - move cursor to a specific bucket key
func (cursor *FetchCursor) Seek(bucketKey uint64) *FetchCursor {
	cursor.maxRange.Start = backend.BucketKey(bucketKey)
	return cursor
}

// Fetch - return some buckets starting from the cursor
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	db := cursor.database.handle()
	if nil == db {
		return nil, fault.ErrSessionClosed
	}

	iter := db.NewIterator(&cursor.maxRange, nil)

	results := make([]Element, 0, count)
	var err error
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key, ok := backend.ParseBucketKey(iter.Key())
		if !ok {
			continue iterating
		}
		value := iter.Value()

		b, e := bucket.Decode(value)
		if nil != e {
			err = e
			break iterating
		}

		results = append(results, Element{
			Key:    key,
			Size:   len(value),
			Bucket: b,
		})
		if len(results) >= count {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}

	if n := len(results); n > 0 {
		cursor.maxRange.Start = backend.BucketKey(results[n-1].Key + 1)
	}
	return results, err
}
