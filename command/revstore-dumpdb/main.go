// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/backend/badger"
	"github.com/bitmark-inc/revstore/backend/leveldb"
	"github.com/bitmark-inc/revstore/bucket"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// colours
const (
	keyColour  = "\033[1;36m"
	kindColour = "\033[1;33m"
	fullColour = "\033[1;32m"
	endColour  = "\033[0m"
)

// stops a badger scan once enough buckets were shown
var errEnough = errors.New("enough")

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "root", HasArg: getoptions.NO_ARGUMENT, Short: 'r'},
		{Long: "engine", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'e'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "start", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 1 != len(options["file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--colour] [--root] [--engine=leveldb|badger] [--count=N] [--start=KEY] --file=DATABASE", program)
	}

	colour := len(options["colour"]) > 0
	verbose := len(options["verbose"]) > 0

	engine := "leveldb"
	if len(options["engine"]) > 0 {
		engine = options["engine"][0]
	}

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	start := uint64(0)
	if len(options["start"]) > 0 {
		start, err = strconv.ParseUint(options["start"][0], 10, 64)
		if nil != err {
			exitwithstatus.Message("%s: convert start error: %s", program, err)
		}
	}

	filename := options["file"][0]
	if verbose {
		fmt.Printf("read %s database: %q\n", engine, filename)
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "revstore-dumpdb.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	p := printer{colour: colour}

	switch engine {
	case "leveldb":
		db, err := leveldb.Open(filename, leveldb.ReadOnly)
		if nil != err {
			exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
		}
		defer db.Close()

		if len(options["root"]) > 0 {
			showRoot(program, db, p)
		}

		data, err := db.NewFetchCursor().Seek(start).Fetch(count)
		if nil != err {
			exitwithstatus.Message("%s: error on Fetch: %s", program, err)
		}
		for _, e := range data {
			p.bucket(e.Key, e.Size, e.Bucket)
		}

	case "badger":
		db, err := badger.Open(filename)
		if nil != err {
			exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
		}
		defer db.Close()

		if len(options["root"]) > 0 {
			showRoot(program, db, p)
		}

		n := 0
		err = db.Buckets(func(key uint64, b bucket.Bucket) error {
			if key < start {
				return nil
			}
			p.bucket(key, -1, b)
			n += 1
			if n >= count {
				return errEnough
			}
			return nil
		})
		if nil != err && errEnough != err {
			exitwithstatus.Message("%s: error on scan: %s", program, err)
		}

	default:
		exitwithstatus.Message("%s: unsupported engine: %q", program, engine)
	}
}

func showRoot(program string, b backend.Backend, p printer) {
	r, err := b.Reader()
	if nil != err {
		exitwithstatus.Message("%s: reader error: %s", program, err)
	}
	defer r.Close()

	d, err := r.ReadDescriptor()
	if nil != err {
		exitwithstatus.Message("%s: descriptor error: %s", program, err)
	}
	fmt.Printf("resource: %s  version: %d  layout: %s  revisioning: %s/%d\n",
		d.ResourceID, d.Version, d.Layout, d.Revisioning, d.RestoreDepth)

	root, err := r.ReadGlobalRoot()
	if nil != err {
		exitwithstatus.Message("%s: root error: %s", program, err)
	}
	p.bucket(0, -1, root)
}
