// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/revstore/bucket"
)

func TestPrinterSummaries(t *testing.T) {
	leaf := bucket.NewLeaf(12, 3, 5, 4)
	leaf.Full = true
	leaf.Slots[1] = bucket.PresentSlot(bucket.Item("x"))

	indirect := bucket.NewIndirect(4, 4)
	indirect.References[2] = bucket.Reference{Key: 12}

	meta := bucket.NewMeta(6)
	meta.Entries["name"] = []byte("doc")

	tests := []struct {
		b        bucket.Bucket
		expected string
	}{
		{leaf, "full sequence: 3  revision: 5  previous: 0  used: 1/4"},
		{indirect, "references: 1/4"},
		{&bucket.RevisionRoot{BucketKey: 7, Revision: 5, MaxItemKey: 13, Data: bucket.Reference{Key: 4}, Meta: bucket.Reference{Key: 6}}, "revision: 5  max item key: 13  data: 4  meta: 6"},
		{meta, "entries: 1"},
		{&bucket.GlobalRoot{BucketKey: 9, Revision: 5, Counter: 20, Revisions: bucket.Reference{Key: 8}}, "bucket: 9  revision: 5  counter: 20  revisions: 8"},
	}

	p := printer{}
	for _, test := range tests {
		assert.Equal(t, test.expected, p.summary(test.b), "kind: %s", test.b.Kind())
	}
}

func TestPrinterLine(t *testing.T) {
	buffer := &bytes.Buffer{}
	p := printer{w: buffer}

	p.bucket(42, 17, bucket.NewMeta(42))
	assert.Contains(t, buffer.String(), "      42 ", "key")
	assert.Contains(t, buffer.String(), "    17B entries: 0", "size and summary")

	buffer.Reset()
	p.colour = true
	p.bucket(42, -1, bucket.NewMeta(42))
	assert.Contains(t, buffer.String(), keyColour, "coloured")
	assert.NotContains(t, buffer.String(), "B entries", "no size")
}
