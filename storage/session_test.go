// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
)

func TestSingleWriter(t *testing.T) {
	s := newSession(t, smallConfiguration())
	defer s.Close()

	first, err := s.BeginWrite()
	require.Nil(t, err, "first writer")

	_, err = s.BeginWrite()
	assert.Equal(t, fault.ErrWriteTransactionInUse, err, "second writer")

	// readers are not blocked by the writer
	rtx, err := s.BeginRead(0)
	assert.Nil(t, err, "reader alongside writer")
	rtx.Close()

	require.Nil(t, first.Close(), "close first")

	second, err := s.BeginWrite()
	assert.Nil(t, err, "writer after close")
	second.Close()
}

func TestSingleWriterConcurrent(t *testing.T) {
	s := newSession(t, smallConfiguration())
	defer s.Close()

	const workers = 8
	results := make(chan error, workers)
	writers := make(chan *WriteTransaction, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wtx, err := s.BeginWrite()
			if nil == err {
				writers <- wtx
			}
			results <- err
		}()
	}
	wg.Wait()
	close(results)
	close(writers)

	succeeded := 0
	for err := range results {
		if nil == err {
			succeeded += 1
		} else {
			assert.Equal(t, fault.ErrWriteTransactionInUse, err, "rejected writer")
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one writer")

	for wtx := range writers {
		wtx.Close()
	}
}

func TestBeginReadUncommittedRevision(t *testing.T) {
	s := newSession(t, smallConfiguration())
	defer s.Close()

	commitItems(t, s, "a")

	_, err := s.BeginRead(2)
	assert.Equal(t, fault.ErrRevisionNotCommitted, errors.Cause(err), "future revision")
}

func TestReadersDuringCommits(t *testing.T) {
	s := newSession(t, smallConfiguration())
	defer s.Close()

	keys := commitItems(t, s, "r1")

	wtx, err := s.BeginWrite()
	require.Nil(t, err, "begin write")

	var wg sync.WaitGroup
	for i := 0; i < 4; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 20; n += 1 {
				revision := s.LastRevision()
				rtx, err := s.BeginRead(revision)
				if !assert.Nil(t, err, "begin read") {
					return
				}
				item, found, err := rtx.Get(keys[0])
				assert.Nil(t, err, "get")
				assert.True(t, found, "found")
				assert.Equal(t, bucket.Item(fmt.Sprintf("r%d", revision)), item, "revision: %d", revision)
				rtx.Close()
			}
		}()
	}

	for revision := 2; revision <= 10; revision += 1 {
		slot, err := wtx.PrepareForModification(keys[0])
		require.Nil(t, err, "prepare")
		slot.Set(bucket.Item(fmt.Sprintf("r%d", revision)))
		require.Nil(t, wtx.FinishModification(), "finish")
		require.Nil(t, wtx.Commit(), "commit")
	}
	wg.Wait()
	require.Nil(t, wtx.Close(), "close")
}

func TestSessionCloseForcesTransactionsClosed(t *testing.T) {
	s := newSession(t, smallConfiguration())

	commitItems(t, s, "a")

	rtx, err := s.BeginRead(1)
	require.Nil(t, err, "begin read")
	wtx, err := s.BeginWrite()
	require.Nil(t, err, "begin write")
	_, err = wtx.SetItem(bucket.Item("uncommitted"))
	require.Nil(t, err, "set item")

	assert.Equal(t, 2, s.OpenTransactions(), "open transactions")

	assert.Nil(t, s.Close(), "close")
	assert.Nil(t, s.Close(), "close twice")

	assert.True(t, rtx.IsClosed(), "reader closed")
	assert.True(t, wtx.IsClosed(), "writer closed")
	assert.Equal(t, 0, s.OpenTransactions(), "none left")

	_, _, err = rtx.Get(1)
	assert.Equal(t, fault.ErrTransactionClosed, err, "read after close")
	err = wtx.Commit()
	assert.Equal(t, fault.ErrTransactionClosed, err, "commit after close")
	assert.Nil(t, rtx.Close(), "close forced reader")
	assert.Nil(t, wtx.Close(), "close forced writer")

	_, err = s.BeginRead(0)
	assert.Equal(t, fault.ErrSessionClosed, err, "begin read")
	_, err = s.BeginWrite()
	assert.Equal(t, fault.ErrSessionClosed, err, "begin write")
}

func TestReadTransactionClose(t *testing.T) {
	s := newSession(t, smallConfiguration())
	defer s.Close()

	rtx, err := s.BeginRead(0)
	require.Nil(t, err, "begin read")
	assert.Equal(t, 1, s.OpenTransactions(), "registered")

	revision, err := rtx.Revision()
	assert.Nil(t, err, "revision")
	assert.Equal(t, uint64(0), revision, "revision")

	assert.Nil(t, rtx.Close(), "close")
	assert.Nil(t, rtx.Close(), "close twice")
	assert.Equal(t, 0, s.OpenTransactions(), "deregistered")

	_, err = rtx.Revision()
	assert.Equal(t, fault.ErrTransactionClosed, err, "after close")
	_, _, err = rtx.Meta("x")
	assert.Equal(t, fault.ErrTransactionClosed, err, "after close")
}

func TestReopenKeepsRevisions(t *testing.T) {
	dir := t.TempDir()

	for _, f := range []struct {
		name string
		open func() (*Session, error)
	}{
		{"leveldb", func() (*Session, error) { return openLevelDB(dir) }},
		{"badger", func() (*Session, error) { return openBadger(dir) }},
	} {
		t.Run(f.name, func(t *testing.T) {
			s, err := f.open()
			require.Nil(t, err, "first open")
			keys := commitItems(t, s, "persisted")
			require.Nil(t, s.Close(), "close")

			s, err = f.open()
			require.Nil(t, err, "second open")
			defer s.Close()

			assert.Equal(t, uint64(1), s.LastRevision(), "revision")
			rtx, err := s.BeginRead(1)
			require.Nil(t, err, "begin read")
			defer rtx.Close()

			item, found, err := rtx.Get(keys[0])
			assert.Nil(t, err, "get")
			assert.True(t, found, "found")
			assert.Equal(t, bucket.Item("persisted"), item, "item")
		})
	}
}
