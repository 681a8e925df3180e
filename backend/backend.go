// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package backend - persistence interfaces for the bucket graph
//
// a backend stores encoded buckets by bucket key, a single global
// root record and a single descriptor record; a writer stages
// everything and makes it durable in one atomic Commit
package backend

import (
	"encoding/binary"

	"github.com/bitmark-inc/revstore/bucket"
)

//go:generate mockgen -source=backend.go -destination=mocks/backend.go -package=mocks

// Reader - read committed state
type Reader interface {
	Read(bucketKey uint64) (bucket.Bucket, error)
	ReadGlobalRoot() (*bucket.GlobalRoot, error)
	ReadDescriptor() (*bucket.Descriptor, error)
	Close() error
}

// Writer - stage and commit new buckets
//
// nothing staged is visible to any Reader until Commit succeeds;
// Abort discards all staged data
type Writer interface {
	Reader
	Write(b bucket.Bucket) error
	WriteGlobalRoot(root *bucket.GlobalRoot) error
	WriteDescriptor(d *bucket.Descriptor) error
	Commit() error
	Abort()
}

// Backend - a storage engine holding one resource
type Backend interface {
	Reader() (Reader, error)
	Writer() (Writer, error)
	Truncate() error
	Close() error
}

// key prefixes shared by the key/value backends
const (
	PrefixBucket     = 'B'
	PrefixRoot       = 'R'
	PrefixDescriptor = 'D'
)

// single record keys
var (
	RootKey       = []byte{PrefixRoot}
	DescriptorKey = []byte{PrefixDescriptor}
)

// BucketKey - storage key for a bucket, ordered by bucket key
func BucketKey(key uint64) []byte {
	k := make([]byte, 9)
	k[0] = PrefixBucket
	binary.BigEndian.PutUint64(k[1:], key)
	return k
}

// ParseBucketKey - inverse of BucketKey
func ParseBucketKey(k []byte) (uint64, bool) {
	if 9 != len(k) || PrefixBucket != k[0] {
		return 0, false
	}
	return binary.BigEndian.Uint64(k[1:]), true
}
