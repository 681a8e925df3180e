// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/revstore/bucket"
)

type infoReply struct {
	Engine       string            `json:"engine"`
	Database     string            `json:"database"`
	Descriptor   bucket.Descriptor `json:"descriptor"`
	LastRevision uint64            `json:"last_revision"`
	LastCommit   time.Time         `json:"last_commit"`
	MaxItemKey   uint64            `json:"max_item_key"`
	SlotsPerLeaf int               `json:"slots_per_leaf"`
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	s, err := m.session()
	if nil != err {
		return err
	}

	trx, err := s.BeginRead(s.LastRevision())
	if nil != err {
		return err
	}
	defer trx.Close()

	maxItemKey, err := trx.MaxItemKey()
	if nil != err {
		return err
	}

	timestamp, err := trx.Timestamp()
	if nil != err {
		return err
	}

	descriptor := s.Descriptor()
	return printJson(m.w, infoReply{
		Engine:       m.config.Database.Engine,
		Database:     m.config.Database.Name,
		Descriptor:   descriptor,
		LastRevision: s.LastRevision(),
		LastCommit:   timestamp,
		MaxItemKey:   maxItemKey,
		SlotsPerLeaf: descriptor.Layout.SlotsPerLeaf(),
	})
}
