// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bucket - the persisted units of a resource
//
// A resource is a graph of immutable buckets addressed by integer
// bucket keys:
//
//   GlobalRoot ─► revision tree (Indirect…) ─► RevisionRoot
//   RevisionRoot ─► data tree (Indirect…) ─► Leaf ─► Leaf (older) …
//   RevisionRoot ─► Meta
//
// buckets are encoded as canonical CBOR and parents hold the SHA3-256
// digest of each child's encoding alongside its key
package bucket
