// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/storage"
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// item keys from the command arguments
func parseKeys(c *cli.Context) ([]uint64, error) {
	if 0 == c.NArg() {
		return nil, ErrMissingKey
	}
	keys := make([]uint64, 0, c.NArg())
	for _, arg := range c.Args() {
		key, err := strconv.ParseUint(arg, 10, 64)
		if nil != err {
			return nil, fmt.Errorf("key: %q  error: %w", arg, ErrInvalidKey)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func encodeItem(item bucket.Item, useHex bool) string {
	if useHex {
		return hex.EncodeToString(item)
	}
	return string(item)
}

func decodeItem(s string, useHex bool) (bucket.Item, error) {
	if useHex {
		return hex.DecodeString(s)
	}
	return bucket.Item(s), nil
}

// read transaction on the requested or the last revision
func beginRead(c *cli.Context, s *storage.Session) (*storage.ReadTransaction, error) {
	revision := c.Int64("revision")
	if revision < 0 {
		return s.BeginRead(s.LastRevision())
	}
	return s.BeginRead(uint64(revision))
}

// run f in a write transaction and commit the result
func update(m *metadata, f func(*storage.WriteTransaction) error) (uint64, error) {
	s, err := m.session()
	if nil != err {
		return 0, err
	}

	trx, err := s.BeginWrite()
	if nil != err {
		return 0, err
	}
	defer trx.Close()

	if err := f(trx); nil != err {
		trx.Abort()
		return 0, err
	}
	if err := trx.Commit(); nil != err {
		trx.Abort()
		return 0, err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "committed revision: %d\n", s.LastRevision())
	}
	return s.LastRevision(), nil
}
