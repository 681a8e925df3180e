// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/revstore/bucket"
)

type printer struct {
	colour bool
	w      io.Writer
}

func (p printer) out() io.Writer {
	if nil == p.w {
		return os.Stdout
	}
	return p.w
}

func (p printer) paint(colour string, s string) string {
	if !p.colour {
		return s
	}
	return colour + s + endColour
}

// one line per bucket, size < 0 when unknown
func (p printer) bucket(key uint64, size int, b bucket.Bucket) {
	k := p.paint(keyColour, fmt.Sprintf("%8d", key))
	kind := p.paint(kindColour, fmt.Sprintf("%-13s", b.Kind()))
	s := ""
	if size >= 0 {
		s = fmt.Sprintf("%6dB ", size)
	}
	fmt.Fprintf(p.out(), "%s %s %s%s\n", k, kind, s, p.summary(b))
}

func (p printer) summary(b bucket.Bucket) string {
	switch v := b.(type) {
	case *bucket.Leaf:
		full := ""
		if v.Full {
			full = p.paint(fullColour, "full ")
		}
		return fmt.Sprintf("%ssequence: %d  revision: %d  previous: %d  used: %d/%d",
			full, v.SequenceKey, v.Revision, v.Previous, v.Used(), len(v.Slots))
	case *bucket.Indirect:
		n := 0
		for _, r := range v.References {
			if !r.IsNull() {
				n += 1
			}
		}
		return fmt.Sprintf("references: %d/%d", n, len(v.References))
	case *bucket.RevisionRoot:
		return fmt.Sprintf("revision: %d  max item key: %d  data: %d  meta: %d",
			v.Revision, v.MaxItemKey, v.Data.Key, v.Meta.Key)
	case *bucket.Meta:
		return fmt.Sprintf("entries: %d", len(v.Entries))
	case *bucket.GlobalRoot:
		return fmt.Sprintf("bucket: %d  revision: %d  counter: %d  revisions: %d",
			v.BucketKey, v.Revision, v.Counter, v.Revisions.Key)
	default:
		return "?"
	}
}
