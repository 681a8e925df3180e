// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/revstore/configuration"
	"github.com/bitmark-inc/revstore/fault"
)

type databaseType struct {
	Engine    string `gluamapper:"engine"`
	Directory string `gluamapper:"directory"`
}

type testConfiguration struct {
	DataDirectory  string            `gluamapper:"data_directory"`
	Database       databaseType      `gluamapper:"database"`
	RestoreDepth   int               `gluamapper:"restore_depth"`
	LevelExponents []uint            `gluamapper:"level_exponents"`
	VerifyHashes   bool              `gluamapper:"verify_hashes"`
	Levels         map[string]string `gluamapper:"levels"`
}

const luaConfig = `
local M = {}
M.data_directory = data_root .. "/revstore"
M.database = {
    engine = "badger",
    directory = "data",
}
M.restore_depth = 4
M.level_exponents = { 6, 6, 6 }
M.verify_hashes = false
M.levels = {
    session = "debug",
    DEFAULT = "error",
}
return M
`

func writeFile(t *testing.T, content string) string {
	name := filepath.Join(t.TempDir(), "revstore.conf")
	err := os.WriteFile(name, []byte(content), 0600)
	require.Nil(t, err, "write configuration")
	return name
}

func TestParseConfigurationFile(t *testing.T) {
	fileName := writeFile(t, luaConfig)

	c := testConfiguration{
		RestoreDepth: 8,
		VerifyHashes: true,
	}
	err := configuration.ParseConfigurationFile(fileName, &c, map[string]string{"data_root": "/var/lib"})
	require.Nil(t, err, "parse")

	assert.Equal(t, "/var/lib/revstore", c.DataDirectory, "variable substitution")
	assert.Equal(t, "badger", c.Database.Engine, "nested table")
	assert.Equal(t, "data", c.Database.Directory, "nested table")
	assert.Equal(t, 4, c.RestoreDepth, "integer")
	assert.Equal(t, []uint{6, 6, 6}, c.LevelExponents, "array")
	assert.False(t, c.VerifyHashes, "boolean")
	assert.Equal(t, "debug", c.Levels["session"], "map")
	assert.Equal(t, "error", c.Levels["DEFAULT"], "map")
}

func TestParseConfigurationFileKeepsDefaults(t *testing.T) {
	fileName := writeFile(t, "return { restore_depth = 2 }")

	c := testConfiguration{
		DataDirectory: ".",
		VerifyHashes:  true,
	}
	err := configuration.ParseConfigurationFile(fileName, &c, nil)
	require.Nil(t, err, "parse")

	assert.Equal(t, ".", c.DataDirectory, "default kept")
	assert.True(t, c.VerifyHashes, "default kept")
	assert.Equal(t, 2, c.RestoreDepth, "set")
}

func TestParseConfigurationFileErrors(t *testing.T) {
	c := testConfiguration{}

	err := configuration.ParseConfigurationFile(filepath.Join(t.TempDir(), "absent.conf"), &c, nil)
	assert.True(t, fault.IsErrNotFound(err), "missing file: %v", err)

	err = configuration.ParseConfigurationFile(writeFile(t, "return {"), &c, nil)
	assert.NotNil(t, err, "syntax error")

	err = configuration.ParseConfigurationFile(writeFile(t, "return 42"), &c, nil)
	assert.NotNil(t, err, "not a table")
}

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/revstore/log", configuration.EnsureAbsolute("/data/revstore", "log"), "relative")
	assert.Equal(t, "/tmp/log", configuration.EnsureAbsolute("/data/revstore", "/tmp/log"), "absolute")
	assert.Equal(t, "/data/log", configuration.EnsureAbsolute("/data/revstore", "../log"), "cleaned")
}

func TestIsPlainName(t *testing.T) {
	assert.True(t, configuration.IsPlainName("revstore.leveldb"), "plain")
	assert.False(t, configuration.IsPlainName("data/revstore.leveldb"), "relative path")
	assert.False(t, configuration.IsPlainName("/revstore.leveldb"), "absolute path")
	assert.False(t, configuration.IsPlainName(""), "empty")
}
