// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/revstore/storage"
)

type metaReply struct {
	Revision uint64 `json:"revision"`
	Name     string `json:"name"`
	Found    bool   `json:"found"`
	Value    string `json:"value,omitempty"`
}

func runMetaGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.Args().First()
	if "" == name {
		return ErrMissingName
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
	value, found, err := trx.Meta(name)
	if nil != err {
		return err
	}

	return printJson(m.w, metaReply{
		Revision: revision,
		Name:     name,
		Found:    found,
		Value:    string(value),
	})
}

func runMetaSet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.Args().Get(0)
	if "" == name {
		return ErrMissingName
	}
	value := c.Args().Get(1)

	revision, err := update(m, func(trx *storage.WriteTransaction) error {
		return trx.SetMeta(name, []byte(value))
	})
	if nil != err {
		return err
	}

	return printJson(m.w, metaReply{
		Revision: revision,
		Name:     name,
		Found:    true,
		Value:    value,
	})
}

func runMetaDelete(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.Args().First()
	if "" == name {
		return ErrMissingName
	}

	revision, err := update(m, func(trx *storage.WriteTransaction) error {
		return trx.DeleteMeta(name)
	})
	if nil != err {
		return err
	}

	return printJson(m.w, metaReply{
		Revision: revision,
		Name:     name,
		Found:    false,
	})
}
