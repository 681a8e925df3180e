// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/revstore/configuration"
	"github.com/bitmark-inc/revstore/fault"
	"github.com/bitmark-inc/revstore/storage"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	engineLevelDB = "leveldb"
	engineBadger  = "badger"

	defaultEngine            = engineLevelDB
	defaultDatabaseDirectory = "data"
	defaultDatabaseName      = "revstore"

	defaultLogDirectory = "log"
	defaultLogFile      = "revstore.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// a fresh copy so that parsing never alters the defaults
func logLevels() map[string]string {
	levels := make(map[string]string, len(defaultLogLevels))
	for k, v := range defaultLogLevels {
		levels[k] = v
	}
	return levels
}

type DatabaseType struct {
	Engine    string `gluamapper:"engine" json:"engine"`
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

type Configuration struct {
	DataDirectory string                `gluamapper:"data_directory" json:"data_directory"`
	Database      DatabaseType          `gluamapper:"database" json:"database"`
	Storage       storage.Configuration `gluamapper:"storage" json:"storage"`
	Logging       logger.Configuration  `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,

		Database: DatabaseType{
			Engine:    defaultEngine,
			Directory: defaultDatabaseDirectory,
			Name:      defaultDatabaseName,
		},

		Storage: storage.DefaultConfiguration(),

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    logLevels(),
		},
	}

	// a configured list must replace the default, not overlay it
	options.Storage.LevelExponents = nil

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	if 0 == len(options.Storage.LevelExponents) {
		options.Storage.LevelExponents = storage.DefaultConfiguration().LevelExponents
	}

	options.Database.Engine = strings.ToLower(options.Database.Engine)
	switch options.Database.Engine {
	case engineLevelDB, engineBadger:
	default:
		return nil, fmt.Errorf("engine: %q  error: %w", options.Database.Engine, fault.ErrUnsupportedDatabase)
	}

	if err := options.Storage.Validate(); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator
	for _, f := range []string{options.Database.Name, options.Logging.File} {
		if !configuration.IsPlainName(f) {
			return nil, fmt.Errorf("Files: %q is not plain name", f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = configuration.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// the database is a directory under the database directory
	options.Database.Name = configuration.EnsureAbsolute(options.Database.Directory, options.Database.Name+"."+options.Database.Engine)

	// done
	return options, nil
}
