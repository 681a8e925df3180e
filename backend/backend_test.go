// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package backend_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/revstore/backend"
)

func TestBucketKey(t *testing.T) {
	for _, key := range []uint64{0, 1, 255, 256, 1 << 40} {
		k := backend.BucketKey(key)
		assert.Equal(t, byte(backend.PrefixBucket), k[0], "prefix")

		parsed, ok := backend.ParseBucketKey(k)
		assert.True(t, ok, "parse: %d", key)
		assert.Equal(t, key, parsed, "round trip")
	}
}

func TestBucketKeysSortInKeyOrder(t *testing.T) {
	assert.Equal(t, -1, bytes.Compare(backend.BucketKey(255), backend.BucketKey(256)), "ordering")
}

func TestParseBucketKeyRejectsOtherRecords(t *testing.T) {
	_, ok := backend.ParseBucketKey(backend.RootKey)
	assert.False(t, ok, "root")
	_, ok = backend.ParseBucketKey(backend.DescriptorKey)
	assert.False(t, ok, "descriptor")
}
