// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/revstore/backend/mocks"
	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
	"github.com/bitmark-inc/revstore/revisioning"
)

func TestCommitterAfterStop(t *testing.T) {
	c := startCommitter()
	c.stop()

	err := c.submit(&stage{}, nil)
	assert.Equal(t, fault.ErrSessionClosed, err, "submit after stop")
}

func TestCommitterClassifiesErrors(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c := startCommitter()
	defer c.stop()

	w := mocks.NewMockWriter(ctl)
	w.EXPECT().Write(gomock.Any()).Return(nil).AnyTimes()
	w.EXPECT().WriteGlobalRoot(gomock.Any()).Return(nil).AnyTimes()
	w.EXPECT().Abort().Times(4)

	gomock.InOrder(
		w.EXPECT().Commit().Return(fault.ErrHashMismatch),
		w.EXPECT().Commit().Return(fault.ErrTransactionClosed),
		w.EXPECT().Commit().Return(fault.NewIOError("commit", io.ErrShortWrite)),
		w.EXPECT().Commit().Return(errors.New("disk full")),
		w.EXPECT().Commit().Return(nil),
	)

	err := c.submit(newTestStage(t), w)
	assert.Equal(t, fault.ErrHashMismatch, err, "integrity passes through")

	err = c.submit(newTestStage(t), w)
	assert.Equal(t, fault.ErrTransactionClosed, err, "usage passes through")
	assert.False(t, fault.IsErrIO(err), "usage is not i/o")

	err = c.submit(newTestStage(t), w)
	assert.True(t, fault.IsErrIO(err), "i/o passes through: %v", err)
	assert.Equal(t, io.ErrShortWrite, errors.Unwrap(err), "cause kept")

	err = c.submit(newTestStage(t), w)
	assert.True(t, fault.IsErrIO(err), "others become i/o: %v", err)

	err = c.submit(newTestStage(t), w)
	assert.Nil(t, err, "success")
}

// a staged empty revision zero on a small layout
func newTestStage(t *testing.T) *stage {
	c := smallConfiguration()
	root := &bucket.GlobalRoot{}
	root.BucketKey = root.NextKey()
	st := &stage{
		tree: &tree{
			layout:   c.Layout(),
			strategy: mustStrategy(t, c),
		},
		log:          newLog(),
		root:         root,
		revisionRoot: &bucket.RevisionRoot{BucketKey: root.NextKey()},
		meta:         bucket.NewMeta(root.NextKey()),
	}
	assert.Nil(t, st.prepareRevisionSlot(), "revision slot")
	return st
}

func mustStrategy(t *testing.T, c Configuration) revisioning.Strategy {
	s, err := revisioning.New(c.Revisioning, c.RestoreDepth)
	assert.Nil(t, err, "strategy")
	return s
}
