// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/revstore/storage"
)

func runTruncate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if !c.Bool("yes") {
		return ErrTruncateNotConfirm
	}

	b, err := m.backend(false)
	if nil != err {
		return err
	}

	if err := storage.Truncate(b); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "removed: %s\n", m.config.Database.Name)
	}
	return nil
}
