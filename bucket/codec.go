// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bucket

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/revstore/fault"
)

// HashSize - bytes in a reference hash
const HashSize = 32

// every stored bucket is wrapped so it can be decoded without
// knowing its kind in advance
type envelope struct {
	Kind Kind            `cbor:"1,keyasint"`
	Body cbor.RawMessage `cbor:"2,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// canonical so equal buckets always hash equally
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if nil != err {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if nil != err {
		panic(err)
	}
}

// Encode - serialise a bucket
func Encode(b Bucket) ([]byte, error) {
	body, err := encMode.Marshal(b)
	if nil != err {
		return nil, err
	}
	return encMode.Marshal(envelope{Kind: b.Kind(), Body: body})
}

// Decode - deserialise a bucket of any kind
func Decode(data []byte) (Bucket, error) {
	env := envelope{}
	if err := decMode.Unmarshal(data, &env); nil != err {
		return nil, errors.Wrap(fault.ErrCorruptBucket, err.Error())
	}

	var b Bucket
	switch env.Kind {
	case KindLeaf:
		b = &Leaf{}
	case KindIndirect:
		b = &Indirect{}
	case KindRevisionRoot:
		b = &RevisionRoot{}
	case KindMeta:
		b = &Meta{}
	case KindGlobalRoot:
		b = &GlobalRoot{}
	default:
		return nil, errors.Wrapf(fault.ErrInvalidBucketKind, "kind: %d", env.Kind)
	}

	if err := decMode.Unmarshal(env.Body, b); nil != err {
		return nil, errors.Wrapf(fault.ErrCorruptBucket, "%s: %s", env.Kind, err)
	}
	if m, ok := b.(*Meta); ok && nil == m.Entries {
		m.Entries = make(map[string][]byte)
	}
	return b, nil
}

// Hash - digest stored in references
func Hash(data []byte) []byte {
	digest := sha3.Sum256(data)
	return digest[:]
}

// EncodeAndHash - serialise and compute the reference digest
func EncodeAndHash(b Bucket) ([]byte, []byte, error) {
	data, err := Encode(b)
	if nil != err {
		return nil, nil, err
	}
	return data, Hash(data), nil
}

// ReferenceTo - a reference to a bucket including its digest
func ReferenceTo(b Bucket) (Reference, error) {
	_, digest, err := EncodeAndHash(b)
	if nil != err {
		return Reference{}, err
	}
	return Reference{Key: b.Key(), Hash: digest}, nil
}
