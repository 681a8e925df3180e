// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"time"

	"github.com/urfave/cli"
)

type historyEntry struct {
	Revision  uint64    `json:"revision"`
	Timestamp time.Time `json:"timestamp"`
	Found     bool      `json:"found"`
	Item      string    `json:"item,omitempty"`
}

type historyReply struct {
	Key     uint64         `json:"key"`
	Changes []historyEntry `json:"changes"`
}

// list the revisions in which an item changed
func runHistory(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	useHex := c.Bool("hex")

	keys, err := parseKeys(c)
	if nil != err {
		return err
	}
	if 1 != len(keys) {
		return ErrInvalidKey
	}
	key := keys[0]

	s, err := m.session()
	if nil != err {
		return err
	}

	reply := historyReply{
		Key:     key,
		Changes: []historyEntry{},
	}

	var previous []byte
	previousFound := false
	last := s.LastRevision()
	for revision := uint64(0); revision <= last; revision += 1 {
		trx, err := s.BeginRead(revision)
		if nil != err {
			return err
		}
		item, found, err := trx.Get(key)
		if nil != err {
			trx.Close()
			return err
		}
		timestamp, err := trx.Timestamp()
		trx.Close()
		if nil != err {
			return err
		}
		if found == previousFound && bytes.Equal(item, previous) {
			continue
		}
		reply.Changes = append(reply.Changes, historyEntry{
			Revision:  revision,
			Timestamp: timestamp,
			Found:     found,
			Item:      encodeItem(item, useHex),
		})
		previous = item
		previousFound = found
	}

	return printJson(m.w, reply)
}
