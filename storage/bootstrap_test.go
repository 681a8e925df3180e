// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/revstore/backend/leveldb"
	"github.com/bitmark-inc/revstore/fault"
	"github.com/bitmark-inc/revstore/revisioning"
)

func TestCreateEmptyResource(t *testing.T) {
	for _, f := range backends {
		t.Run(f.name, func(t *testing.T) {
			s := newSessionOn(t, f.open(t), smallConfiguration())
			defer s.Close()

			assert.Equal(t, uint64(0), s.LastRevision(), "revision")

			rtx, err := s.BeginRead(0)
			require.Nil(t, err, "begin read")
			defer rtx.Close()

			maxKey, err := rtx.MaxItemKey()
			assert.Nil(t, err, "max item key")
			assert.Equal(t, uint64(0), maxKey, "max item key")

			for _, key := range []uint64{0, 1, 255} {
				_, found, err := rtx.Get(key)
				assert.Nil(t, err, "get: %d", key)
				assert.False(t, found, "get: %d", key)
			}
		})
	}
}

func TestCreateTwice(t *testing.T) {
	db, err := leveldb.OpenMemory()
	require.Nil(t, err, "open")
	defer db.Close()

	_, err = Create(db, smallConfiguration())
	require.Nil(t, err, "first create")

	_, err = Create(db, smallConfiguration())
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second create")
}

func TestCreateInvalidConfiguration(t *testing.T) {
	db, err := leveldb.OpenMemory()
	require.Nil(t, err, "open")
	defer db.Close()

	c := smallConfiguration()
	c.RestoreDepth = 0
	_, err = Create(db, c)
	assert.Equal(t, fault.ErrInvalidRestoreDepth, err, "restore depth")

	c = smallConfiguration()
	c.Revisioning = "sliding"
	_, err = Create(db, c)
	assert.True(t, fault.IsErrInvalid(err), "revisioning: %s", err)

	c = smallConfiguration()
	c.LevelExponents = nil
	_, err = Create(db, c)
	assert.True(t, fault.IsErrInvalid(err), "layout: %s", err)

	_, err = Open(db, smallConfiguration())
	assert.Equal(t, fault.ErrNotBootstrapped, err, "nothing was written")
}

func TestOpenNotBootstrapped(t *testing.T) {
	db, err := leveldb.OpenMemory()
	require.Nil(t, err, "open")
	defer db.Close()

	_, err = Open(db, DefaultConfiguration())
	assert.Equal(t, fault.ErrNotBootstrapped, err, "open")
}

func TestDescriptorOverridesConfiguration(t *testing.T) {
	db, err := leveldb.OpenMemory()
	require.Nil(t, err, "open")

	c := smallConfiguration()
	c.Revisioning = revisioning.DifferentialName
	created, err := Create(db, c)
	require.Nil(t, err, "create")

	s, err := Open(db, DefaultConfiguration())
	require.Nil(t, err, "open")
	defer s.Close()

	d := s.Descriptor()
	assert.Equal(t, created.ResourceID, d.ResourceID, "resource id")
	assert.Equal(t, c.Layout(), d.Layout, "layout")
	assert.Equal(t, 3, d.RestoreDepth, "restore depth")
	assert.Equal(t, revisioning.DifferentialName, d.Revisioning, "revisioning")
	assert.Equal(t, revisioning.DifferentialName, s.tree.strategy.Name(), "strategy in use")
	assert.Equal(t, 4, s.tree.layout.SlotsPerLeaf(), "layout in use")
}

func TestTruncate(t *testing.T) {
	db, err := leveldb.OpenMemory()
	require.Nil(t, err, "open")

	_, err = Create(db, smallConfiguration())
	require.Nil(t, err, "create")

	err = Truncate(db)
	assert.Nil(t, err, "truncate")

	_, err = Open(db, smallConfiguration())
	assert.NotNil(t, err, "open after truncate")
}
