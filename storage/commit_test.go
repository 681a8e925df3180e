// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/revstore/backend/leveldb"
	"github.com/bitmark-inc/revstore/backend/mocks"
	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
)

func TestCommitFailureLeavesLastRevision(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db, err := leveldb.OpenMemory()
	require.Nil(t, err, "open")
	_, err = Create(db, smallConfiguration())
	require.Nil(t, err, "create")

	writer, err := db.Writer()
	require.Nil(t, err, "writer")

	w := mocks.NewMockWriter(ctl)
	w.EXPECT().Write(gomock.Any()).DoAndReturn(writer.Write).AnyTimes()
	w.EXPECT().WriteGlobalRoot(gomock.Any()).DoAndReturn(writer.WriteGlobalRoot).AnyTimes()
	w.EXPECT().Abort().Do(writer.Abort).AnyTimes()
	w.EXPECT().Close().DoAndReturn(writer.Close).AnyTimes()

	gomock.InOrder(
		w.EXPECT().Commit().DoAndReturn(writer.Commit).Times(1),
		w.EXPECT().Commit().Return(fmt.Errorf("disk full")).Times(1),
		w.EXPECT().Commit().DoAndReturn(writer.Commit).Times(1),
	)

	b := mocks.NewMockBackend(ctl)
	b.EXPECT().Reader().DoAndReturn(db.Reader).AnyTimes()
	b.EXPECT().Writer().Return(w, nil).Times(1)
	b.EXPECT().Close().DoAndReturn(db.Close).Times(1)

	s, err := Open(b, smallConfiguration())
	require.Nil(t, err, "open session")
	defer s.Close()

	wtx, err := s.BeginWrite()
	require.Nil(t, err, "begin write")

	key, err := wtx.SetItem(bucket.Item("committed"))
	require.Nil(t, err, "set item")
	require.Nil(t, wtx.Commit(), "first commit")

	slot, err := wtx.PrepareForModification(key)
	require.Nil(t, err, "prepare")
	slot.Set(bucket.Item("lost"))
	require.Nil(t, wtx.FinishModification(), "finish")

	err = wtx.Commit()
	assert.True(t, fault.IsErrIO(err), "commit error: %v", err)
	assert.Equal(t, uint64(1), s.LastRevision(), "revision not advanced")
	assert.True(t, wtx.HasChanges(), "changes kept")

	rtx, err := s.BeginRead(1)
	require.Nil(t, err, "begin read")
	item, _, err := rtx.Get(key)
	assert.Nil(t, err, "get")
	assert.Equal(t, bucket.Item("committed"), item, "old content readable")
	rtx.Close()

	_, err = s.BeginRead(2)
	assert.NotNil(t, err, "failed revision not visible")

	// retry succeeds with the same staged changes
	require.Nil(t, wtx.Commit(), "retry")
	assert.Equal(t, uint64(2), s.LastRevision(), "revision advanced")
	require.Nil(t, wtx.Close(), "close")

	rtx, err = s.BeginRead(2)
	require.Nil(t, err, "begin read")
	defer rtx.Close()
	item, _, err = rtx.Get(key)
	assert.Nil(t, err, "get")
	assert.Equal(t, bucket.Item("lost"), item, "retried content")
}

func TestBeginWriteBackendError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db, err := leveldb.OpenMemory()
	require.Nil(t, err, "open")
	_, err = Create(db, smallConfiguration())
	require.Nil(t, err, "create")

	b := mocks.NewMockBackend(ctl)
	b.EXPECT().Reader().DoAndReturn(db.Reader).AnyTimes()
	b.EXPECT().Writer().Return(nil, fault.ErrReadOnly).Times(2)
	b.EXPECT().Close().DoAndReturn(db.Close).Times(1)

	s, err := Open(b, smallConfiguration())
	require.Nil(t, err, "open session")
	defer s.Close()

	_, err = s.BeginWrite()
	assert.Equal(t, fault.ErrReadOnly, err, "first attempt")

	// the write slot was released
	_, err = s.BeginWrite()
	assert.Equal(t, fault.ErrReadOnly, err, "second attempt")
}

func TestSessionCloseWaitsForCommit(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dir := t.TempDir()
	db, err := leveldb.Open(filepath.Join(dir, "revstore.leveldb"), leveldb.ReadWrite)
	require.Nil(t, err, "open")
	_, err = Create(db, smallConfiguration())
	require.Nil(t, err, "create")

	writer, err := db.Writer()
	require.Nil(t, err, "writer")

	// the first bucket write stalls so the session closes mid commit
	started := make(chan struct{})
	var once sync.Once
	slowWrite := func(b bucket.Bucket) error {
		once.Do(func() {
			close(started)
			time.Sleep(200 * time.Millisecond)
		})
		return writer.Write(b)
	}

	w := mocks.NewMockWriter(ctl)
	w.EXPECT().Write(gomock.Any()).DoAndReturn(slowWrite).AnyTimes()
	w.EXPECT().WriteGlobalRoot(gomock.Any()).DoAndReturn(writer.WriteGlobalRoot).AnyTimes()
	w.EXPECT().Commit().DoAndReturn(writer.Commit).Times(1)
	w.EXPECT().Abort().Do(writer.Abort).AnyTimes()
	w.EXPECT().Close().DoAndReturn(writer.Close).AnyTimes()

	b := mocks.NewMockBackend(ctl)
	b.EXPECT().Reader().DoAndReturn(db.Reader).AnyTimes()
	b.EXPECT().Writer().Return(w, nil).Times(1)
	b.EXPECT().Close().DoAndReturn(db.Close).Times(1)

	s, err := Open(b, smallConfiguration())
	require.Nil(t, err, "open session")

	wtx, err := s.BeginWrite()
	require.Nil(t, err, "begin write")
	key, err := wtx.SetItem(bucket.Item("durable"))
	require.Nil(t, err, "set item")

	done := make(chan error, 1)
	go func() {
		done <- wtx.Commit()
	}()

	<-started
	require.Nil(t, s.Close(), "close session")

	assert.Nil(t, <-done, "commit in flight completes")
	assert.True(t, wtx.IsClosed(), "write transaction closed")
	assert.Equal(t, uint64(1), s.LastRevision(), "revision published")

	s, err = openLevelDB(dir)
	require.Nil(t, err, "reopen")
	defer s.Close()
	assert.Equal(t, uint64(1), s.LastRevision(), "revision persisted")

	rtx, err := s.BeginRead(1)
	require.Nil(t, err, "begin read")
	defer rtx.Close()
	item, found, err := rtx.Get(key)
	assert.Nil(t, err, "get")
	assert.True(t, found, "found")
	assert.Equal(t, bucket.Item("durable"), item, "item")
}

func TestCommitAfterSessionClose(t *testing.T) {
	s := newSession(t, smallConfiguration())

	wtx, err := s.BeginWrite()
	require.Nil(t, err, "begin write")
	_, err = wtx.SetItem(bucket.Item("late"))
	require.Nil(t, err, "set item")

	require.Nil(t, s.Close(), "close session")

	err = wtx.Commit()
	assert.Equal(t, fault.ErrTransactionClosed, err, "commit after close")
	assert.True(t, fault.IsErrInvalid(err), "usage error")
}
