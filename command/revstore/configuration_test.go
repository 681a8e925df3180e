// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/revstore/fault"
	"github.com/bitmark-inc/revstore/revisioning"
)

const testConfig = `
local M = {}
M.data_directory = "."
M.database = {
    engine = engine,
}
M.storage = {
    restore_depth = 4,
    revisioning = "differential",
    leaf_exponent = 3,
    level_exponents = { 4, 4 },
    verify_hashes = false,
}
M.logging = {
    size = 4096,
    count = 2,
    levels = {
        DEFAULT = "error",
    },
}
return M
`

func writeConfig(t *testing.T, content string) string {
	dir := t.TempDir()
	name := filepath.Join(dir, "revstore.conf")
	require.Nil(t, os.WriteFile(name, []byte(content), 0600), "write configuration")
	return name
}

func TestGetConfiguration(t *testing.T) {
	file := writeConfig(t, testConfig)
	dir := filepath.Dir(file)

	c, err := getConfiguration(file, map[string]string{"engine": "Badger"})
	require.Nil(t, err, "get configuration")

	assert.Equal(t, dir+"/", c.DataDirectory, "data directory")
	assert.Equal(t, engineBadger, c.Database.Engine, "engine lower cased")
	assert.Equal(t, filepath.Join(dir, "data"), c.Database.Directory, "database directory")
	assert.Equal(t, filepath.Join(dir, "data", "revstore.badger"), c.Database.Name, "database")

	assert.Equal(t, 4, c.Storage.RestoreDepth, "restore depth")
	assert.Equal(t, revisioning.DifferentialName, c.Storage.Revisioning, "revisioning")
	assert.Equal(t, uint(3), c.Storage.LeafExponent, "leaf exponent")
	assert.Equal(t, []uint{4, 4}, c.Storage.LevelExponents, "level exponents")
	assert.False(t, c.Storage.VerifyHashes, "verify hashes")
	assert.Equal(t, 1000, c.Storage.CacheSize, "default cache size")

	assert.Equal(t, filepath.Join(dir, "log"), c.Logging.Directory, "log directory")
	assert.Equal(t, defaultLogFile, c.Logging.File, "default log file")
	assert.Equal(t, 4096, c.Logging.Size, "log size")
	assert.Equal(t, "error", c.Logging.Levels["DEFAULT"], "log level")

	info, err := os.Stat(c.Logging.Directory)
	require.Nil(t, err, "log directory created")
	assert.True(t, info.IsDir(), "log directory")
}

func TestGetConfigurationErrors(t *testing.T) {
	_, err := getConfiguration(writeConfig(t, testConfig), map[string]string{"engine": "bolt"})
	assert.True(t, fault.IsErrInvalid(err), "engine: %v", err)

	_, err = getConfiguration(writeConfig(t, `return { database = { engine = "leveldb" } }`), nil)
	assert.NotNil(t, err, "no data directory")

	_, err = getConfiguration(writeConfig(t, `return { data_directory = ".", storage = { restore_depth = 0 } }`), nil)
	assert.Equal(t, fault.ErrInvalidRestoreDepth, err, "restore depth")

	_, err = getConfiguration(writeConfig(t, `return { data_directory = ".", database = { name = "a/b" } }`), nil)
	assert.NotNil(t, err, "database name with a path")

	_, err = getConfiguration(filepath.Join(t.TempDir(), "absent.conf"), nil)
	assert.True(t, fault.IsErrNotFound(err), "missing file: %v", err)
}
