// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/revstore/storage"
)

func runRemove(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	keys, err := parseKeys(c)
	if nil != err {
		return err
	}

	revision, err := update(m, func(trx *storage.WriteTransaction) error {
		for _, key := range keys {
			if err := trx.RemoveItem(key); nil != err {
				return err
			}
		}
		return nil
	})
	if nil != err {
		return err
	}

	return printJson(m.w, putReply{
		Revision: revision,
		Keys:     keys,
	})
}
