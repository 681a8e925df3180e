// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - copy-on-write multi-revision bucket store
//
// A resource is a graph of immutable buckets held by a backend.
// Every commit creates a new revision by copying the path from the
// roots down to each modified leaf; untouched sub-trees are shared
// with earlier revisions.
//
// Layout of one resource:
//
//   global root        - revision number, bucket key counter,
//                        reference to the revision tree
//   revision tree      - D levels of indirect buckets
//                        revision number → revision root
//   revision root      - max item key, reference to the data tree,
//                        reference to the metadata bucket
//   data tree          - D levels of indirect buckets
//                        sequence key (item key >> K) → leaf chain head
//   leaf               - 2^K slots, pointer to the same leaf in an
//                        older revision unless marked full
//
// Concurrency:
//
//   any number of read transactions, each pinned to one committed
//   revision, plus at most one write transaction per session.  A
//   commit is flushed by the session's committer goroutine and the
//   new global root is published only after the backend commit
//   succeeded, so readers never see a partial revision.
package storage
