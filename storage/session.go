// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
	"sync/atomic"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
	"github.com/bitmark-inc/revstore/revisioning"
)

// anything the session can force closed
type transaction interface {
	forceClose()
}

// Session - owner of one opened resource
type Session struct {
	sync.Mutex

	log          *logger.L
	backend      backend.Backend
	reader       backend.Reader
	descriptor   *bucket.Descriptor
	tree         *tree
	cacheSize    int
	committer    *committer
	root         atomic.Pointer[bucket.GlobalRoot]
	writing      atomic.Bool
	nextID       atomic.Uint64
	transactions *xsync.MapOf[uint64, transaction]
	closed       bool
}

// Open - start a session on a bootstrapped resource
//
// the layout, restore depth and revisioning come from the resource's
// descriptor; only the cache size and hash verification are taken
// from the configuration
func Open(b backend.Backend, configuration Configuration) (*Session, error) {
	log := logger.New("session")

	reader, err := b.Reader()
	if nil != err {
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			reader.Close()
		}
	}()

	descriptor, err := reader.ReadDescriptor()
	if fault.ErrDescriptorNotFound == err {
		return nil, fault.ErrNotBootstrapped
	} else if nil != err {
		return nil, err
	}
	if err := descriptor.Layout.Validate(); nil != err {
		return nil, errors.Wrap(err, "descriptor")
	}

	strategy, err := revisioning.New(descriptor.Revisioning, descriptor.RestoreDepth)
	if nil != err {
		return nil, errors.Wrap(err, "descriptor")
	}

	root, err := reader.ReadGlobalRoot()
	if nil != err {
		return nil, err
	}

	s := &Session{
		log:        log,
		backend:    b,
		reader:     reader,
		descriptor: descriptor,
		tree: &tree{
			layout:   descriptor.Layout,
			strategy: strategy,
			verify:   configuration.VerifyHashes,
			log:      log,
		},
		cacheSize:    configuration.cacheSize(),
		committer:    startCommitter(),
		transactions: xsync.NewMapOf[uint64, transaction](),
	}
	s.root.Store(root)

	log.Infof("opened resource: %s  revision: %d  layout: %s  revisioning: %s/%d",
		descriptor.ResourceID, root.Revision, descriptor.Layout, strategy.Name(), strategy.RestoreDepth())

	ok = true
	return s, nil
}

// Descriptor - the parameters the resource was created with
func (s *Session) Descriptor() bucket.Descriptor {
	return *s.descriptor
}

// LastRevision - most recent committed revision
func (s *Session) LastRevision() uint64 {
	return s.root.Load().Revision
}

func (s *Session) isClosed() bool {
	s.Lock()
	defer s.Unlock()
	return s.closed
}

// BeginRead - read transaction on a committed revision
func (s *Session) BeginRead(revision uint64) (*ReadTransaction, error) {
	if s.isClosed() {
		return nil, fault.ErrSessionClosed
	}

	root := s.root.Load()
	if revision > root.Revision {
		return nil, errors.Wrapf(fault.ErrRevisionNotCommitted, "revision: %d  last: %d", revision, root.Revision)
	}

	v, err := newView(s.tree, s.reader, root, revision, s.cacheSize)
	if nil != err {
		return nil, err
	}

	trx := &ReadTransaction{
		id:      s.nextID.Add(1),
		session: s,
		view:    v,
	}
	if err := s.register(trx.id, trx); nil != err {
		return nil, err
	}
	s.log.Debugf("read transaction: %d  revision: %d", trx.id, revision)
	return trx, nil
}

// BeginWrite - the single write transaction, staging the revision
// after the last committed one
//
// fails immediately if a write transaction is already open
func (s *Session) BeginWrite() (*WriteTransaction, error) {
	if s.isClosed() {
		return nil, fault.ErrSessionClosed
	}
	if !s.writing.CompareAndSwap(false, true) {
		return nil, fault.ErrWriteTransactionInUse
	}

	trx, err := s.newWriteTransaction()
	if nil != err {
		s.writing.Store(false)
		return nil, err
	}
	if err := s.register(trx.id, trx); nil != err {
		trx.release()
		return nil, err
	}
	s.log.Debugf("write transaction: %d  base revision: %d", trx.id, trx.base.Revision)
	return trx, nil
}

func (s *Session) newWriteTransaction() (*WriteTransaction, error) {
	w, err := s.backend.Writer()
	if nil != err {
		return nil, err
	}
	trx := &WriteTransaction{
		id:      s.nextID.Add(1),
		session: s,
		writer:  w,
	}
	if err := trx.setUp(s.root.Load()); nil != err {
		w.Close()
		return nil, err
	}
	return trx, nil
}

// publish a newly committed global root
func (s *Session) publish(root *bucket.GlobalRoot) {
	s.root.Store(root)
}

func (s *Session) register(id uint64, trx transaction) error {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return fault.ErrSessionClosed
	}
	s.transactions.Store(id, trx)
	return nil
}

func (s *Session) deregister(id uint64) {
	s.transactions.Delete(id)
}

// OpenTransactions - number of transactions not yet closed
func (s *Session) OpenTransactions() int {
	return s.transactions.Size()
}

// Close - force close all transactions and release the backend;
// closing twice is allowed
func (s *Session) Close() error {
	s.Lock()
	if s.closed {
		s.Unlock()
		return nil
	}
	s.closed = true
	s.Unlock()

	// an in-flight commit still owns its writer
	s.committer.stop()

	n := 0
	s.transactions.Range(func(id uint64, trx transaction) bool {
		trx.forceClose()
		s.transactions.Delete(id)
		n += 1
		return true
	})
	if n > 0 {
		s.log.Warnf("force closed transactions: %d", n)
	}

	s.reader.Close()
	err := s.backend.Close()

	s.log.Infof("closed at revision: %d", s.LastRevision())
	s.log.Flush()
	return err
}

// Truncate - remove a resource that no session is using
func Truncate(b backend.Backend) error {
	log := logger.New("session")
	if err := b.Truncate(); nil != err {
		log.Errorf("truncate error: %s", err)
		return err
	}
	log.Info("truncated resource")
	return nil
}
