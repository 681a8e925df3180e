// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/backend/badger"
	"github.com/bitmark-inc/revstore/backend/leveldb"
	"github.com/bitmark-inc/revstore/fault"
	"github.com/bitmark-inc/revstore/storage"
)

// open the configured storage engine
func openBackend(database DatabaseType, readOnly bool) (backend.Backend, error) {
	switch database.Engine {
	case engineLevelDB:
		return leveldb.Open(database.Name, readOnly)
	case engineBadger:
		return badger.Open(database.Name)
	default:
		return nil, fault.ErrUnsupportedDatabase
	}
}

// session on the configured resource, opened on first use
func (m *metadata) session() (*storage.Session, error) {
	if nil != m.s {
		return m.s, nil
	}

	b, err := m.backend(m.readOnly)
	if nil != err {
		return nil, err
	}
	s, err := storage.Open(b, m.config.Storage)
	if nil != err {
		return nil, err
	}
	m.s = s
	return s, nil
}

func (m *metadata) backend(readOnly bool) (backend.Backend, error) {
	if nil != m.b {
		return m.b, nil
	}
	b, err := openBackend(m.config.Database, readOnly)
	if nil != err {
		return nil, err
	}
	m.b = b
	return b, nil
}

// release the session or the bare backend
func (m *metadata) close() error {
	if nil != m.s {
		err := m.s.Close()
		m.s = nil
		m.b = nil
		return err
	}
	if nil != m.b {
		err := m.b.Close()
		m.b = nil
		return err
	}
	return nil
}
