// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/revstore/storage"
)

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	b, err := m.backend(false)
	if nil != err {
		return err
	}

	descriptor, err := storage.Create(b, m.config.Storage)
	if nil != err {
		return err
	}

	return printJson(m.w, descriptor)
}
