// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bucket

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/revstore/address"
	"github.com/bitmark-inc/revstore/fault"
)

// DescriptorVersion - current descriptor format
const DescriptorVersion = 1

// Descriptor - parameters fixed when a resource is created
type Descriptor struct {
	Version      int            `cbor:"1,keyasint"`
	ResourceID   uuid.UUID      `cbor:"2,keyasint"`
	Layout       address.Layout `cbor:"3,keyasint"`
	RestoreDepth int            `cbor:"4,keyasint"`
	Revisioning  string         `cbor:"5,keyasint"`
	Created      int64          `cbor:"6,keyasint"`
}

// NewDescriptor - descriptor for a fresh resource
func NewDescriptor(layout address.Layout, restoreDepth int, revisioning string) *Descriptor {
	return &Descriptor{
		Version:      DescriptorVersion,
		ResourceID:   uuid.New(),
		Layout:       layout,
		RestoreDepth: restoreDepth,
		Revisioning:  revisioning,
		Created:      time.Now().UTC().Unix(),
	}
}

// EncodeDescriptor - serialise a descriptor
func EncodeDescriptor(d *Descriptor) ([]byte, error) {
	return encMode.Marshal(d)
}

// DecodeDescriptor - deserialise a descriptor
func DecodeDescriptor(data []byte) (*Descriptor, error) {
	d := &Descriptor{}
	if err := decMode.Unmarshal(data, d); nil != err {
		return nil, errors.Wrap(fault.ErrCorruptBucket, err.Error())
	}
	if DescriptorVersion != d.Version {
		return nil, errors.Wrapf(fault.ErrUnsupportedVersion, "descriptor version: %d", d.Version)
	}
	return d, nil
}
