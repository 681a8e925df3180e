// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

type itemReply struct {
	Key   uint64 `json:"key"`
	Found bool   `json:"found"`
	Item  string `json:"item,omitempty"`
}

type getReply struct {
	Revision uint64      `json:"revision"`
	Items    []itemReply `json:"items"`
}

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	useHex := c.Bool("hex")

	keys, err := parseKeys(c)
	if nil != err {
		return err
	}

	s, err := m.session()
	if nil != err {
		return err
	}

	trx, err := beginRead(c, s)
	if nil != err {
		return err
	}
	defer trx.Close()

	revision, err := trx.Revision()
	if nil != err {
		return err
	}

	reply := getReply{
		Revision: revision,
		Items:    make([]itemReply, 0, len(keys)),
	}
	for _, key := range keys {
		item, found, err := trx.Get(key)
		if nil != err {
			return err
		}
		reply.Items = append(reply.Items, itemReply{
			Key:   key,
			Found: found,
			Item:  encodeItem(item, useHex),
		})
	}

	return printJson(m.w, reply)
}
