// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/revstore/address"
	"github.com/bitmark-inc/revstore/fault"
	"github.com/bitmark-inc/revstore/revisioning"
)

// defaults
const (
	DefaultRestoreDepth = 8
	DefaultCacheSize    = 1000
	minimumCacheSize    = 16
)

// Configuration - storage parameters
//
// RestoreDepth, Revisioning and the exponents only apply when a
// resource is created; an existing resource keeps the values in
// its descriptor
type Configuration struct {
	RestoreDepth   int    `gluamapper:"restore_depth" json:"restore_depth"`
	Revisioning    string `gluamapper:"revisioning" json:"revisioning"`
	LeafExponent   uint   `gluamapper:"leaf_exponent" json:"leaf_exponent"`
	LevelExponents []uint `gluamapper:"level_exponents" json:"level_exponents"`
	CacheSize      int    `gluamapper:"cache_size" json:"cache_size"`
	VerifyHashes   bool   `gluamapper:"verify_hashes" json:"verify_hashes"`
}

// DefaultConfiguration - a configuration with every field set
func DefaultConfiguration() Configuration {
	layout := address.Default()
	return Configuration{
		RestoreDepth:   DefaultRestoreDepth,
		Revisioning:    revisioning.DefaultName,
		LeafExponent:   layout.LeafExponent,
		LevelExponents: layout.LevelExponents,
		CacheSize:      DefaultCacheSize,
		VerifyHashes:   true,
	}
}

// Layout - tree shape described by the configuration
func (c Configuration) Layout() address.Layout {
	return address.Layout{
		LeafExponent:   c.LeafExponent,
		LevelExponents: append([]uint(nil), c.LevelExponents...),
	}
}

// Validate - check ranges
func (c Configuration) Validate() error {
	if c.RestoreDepth < 1 {
		return fault.ErrInvalidRestoreDepth
	}
	if _, err := revisioning.New(c.Revisioning, c.RestoreDepth); nil != err {
		return err
	}
	if c.CacheSize < 0 {
		return fault.ErrInvalidCount
	}
	return c.Layout().Validate()
}

func (c Configuration) cacheSize() int {
	if c.CacheSize < minimumCacheSize {
		return minimumCacheSize
	}
	return c.CacheSize
}
