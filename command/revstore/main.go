// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/storage"
)

type metadata struct {
	file     string
	config   *Configuration
	readOnly bool
	verbose  bool
	b        backend.Backend
	s        *storage.Session
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "revstore"
	app.Usage = "multi-revision item store"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "revstore.conf",
			Usage: " Lua configuration `FILE`",
		},
		cli.StringSliceFlag{
			Name:  "define, d",
			Usage: " set Lua global `NAME=VALUE` before reading the configuration",
		},
	}

	revisionFlag := cli.Int64Flag{
		Name:  "revision, r",
		Value: -1,
		Usage: " read committed `REVISION` [default: last]",
	}
	hexFlag := cli.BoolFlag{
		Name:  "hex, x",
		Usage: " items are hex encoded",
	}

	app.Commands = []cli.Command{
		{
			Name:   "create",
			Usage:  "initialise an empty resource using the storage configuration",
			Action: runCreate,
		},
		{
			Name:   "info",
			Usage:  "display the resource descriptor and last revision",
			Action: runInfo,
		},
		{
			Name:      "put",
			Usage:     "store items in a new revision",
			ArgsUsage: "ITEM...\n   (* = required)",
			Flags: []cli.Flag{
				hexFlag,
				cli.Uint64Flag{
					Name:  "key, k",
					Usage: " replace the item at existing `KEY` instead of allocating",
				},
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: " read a single item from `FILE`",
				},
			},
			Action: runPut,
		},
		{
			Name:      "get",
			Usage:     "fetch items",
			ArgsUsage: "KEY...",
			Flags:     []cli.Flag{hexFlag, revisionFlag},
			Action:    runGet,
		},
		{
			Name:      "remove",
			Usage:     "delete items in a new revision",
			ArgsUsage: "KEY...",
			Action:    runRemove,
		},
		{
			Name:      "history",
			Usage:     "show every revision of an item",
			ArgsUsage: "KEY",
			Flags:     []cli.Flag{hexFlag},
			Action:    runHistory,
		},
		{
			Name:  "meta",
			Usage: "resource metadata",
			Subcommands: []cli.Command{
				{
					Name:      "get",
					Usage:     "fetch a metadata entry",
					ArgsUsage: "NAME",
					Flags:     []cli.Flag{revisionFlag},
					Action:    runMetaGet,
				},
				{
					Name:      "set",
					Usage:     "set a metadata entry in a new revision",
					ArgsUsage: "NAME VALUE",
					Action:    runMetaSet,
				},
				{
					Name:      "delete",
					Usage:     "delete a metadata entry in a new revision",
					ArgsUsage: "NAME",
					Action:    runMetaDelete,
				},
			},
		},
		{
			Name:  "truncate",
			Usage: "remove the resource and all its revisions",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "yes, y",
					Usage: "*confirm removal",
				},
			},
			Action: runTruncate,
		},
		{
			Name:  "version",
			Usage: "display revstore version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration and start logging
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		switch command {
		case "", "version", "help", "h":
			return nil
		}

		variables := make(map[string]string)
		for _, d := range c.GlobalStringSlice("define") {
			v := strings.SplitN(d, "=", 2)
			if 2 != len(v) || "" == v[0] {
				return fmt.Errorf("define: %q is not NAME=VALUE", d)
			}
			variables[v[0]] = v[1]
		}

		file := c.GlobalString("config-file")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		configuration, err := getConfiguration(file, variables)
		if nil != err {
			return err
		}

		if err := logger.Initialise(configuration.Logging); nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			file:     file,
			config:   configuration,
			readOnly: "get" == command || "info" == command || "history" == command,
			verbose:  verbose,
			e:        e,
			w:        w,
		}
		return nil
	}

	// release the resource
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		err := m.close()
		logger.Finalise()
		return err
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("%s: terminated with error: %s", app.Name, err)
	}
}
