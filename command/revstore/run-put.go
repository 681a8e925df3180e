// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/storage"
)

type putReply struct {
	Revision uint64   `json:"revision"`
	Keys     []uint64 `json:"keys"`
}

func runPut(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	useHex := c.Bool("hex")

	items := make([]bucket.Item, 0, c.NArg()+1)
	if file := c.String("file"); "" != file {
		data, err := os.ReadFile(file)
		if nil != err {
			return err
		}
		items = append(items, data)
	}
	for _, arg := range c.Args() {
		item, err := decodeItem(arg, useHex)
		if nil != err {
			return err
		}
		items = append(items, item)
	}
	if 0 == len(items) {
		return ErrMissingItem
	}

	replace := c.IsSet("key")
	key := c.Uint64("key")
	if replace && 1 != len(items) {
		return ErrMissingItem
	}

	keys := make([]uint64, 0, len(items))
	revision, err := update(m, func(trx *storage.WriteTransaction) error {
		if replace {
			slot, err := trx.PrepareForModification(key)
			if nil != err {
				return err
			}
			slot.Set(items[0])
			keys = append(keys, key)
			return trx.FinishModification()
		}
		for _, item := range items {
			k, err := trx.SetItem(item)
			if nil != err {
				return err
			}
			keys = append(keys, k)
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
