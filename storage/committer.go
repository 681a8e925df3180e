// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/background"
	"github.com/bitmark-inc/revstore/fault"
)

// a request to flush one stage
type commitRequest struct {
	stage  *stage
	writer backend.Writer
	done   chan error
}

// committer - background flushing of write transactions
//
// requests are handled strictly in arrival order
type committer struct {
	log      *logger.L
	queue    chan commitRequest
	finished chan struct{}
	process  *background.T
}

func startCommitter() *committer {
	c := &committer{
		log:      logger.New("committer"),
		queue:    make(chan commitRequest),
		finished: make(chan struct{}),
	}
	c.process = background.Start(background.Processes{c}, nil)
	return c
}

// Run - handle requests until shutdown
func (c *committer) Run(args interface{}, shutdown <-chan struct{}) {
	c.log.Info("starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case request := <-c.queue:
			request.done <- c.commit(request)
		}
	}
	close(c.finished)
	c.log.Info("stopped")
}

func (c *committer) commit(request commitRequest) error {
	revision := request.stage.revision()

	err := request.stage.flush(request.writer)
	if nil == err {
		err = request.writer.Commit()
	}
	if nil != err {
		request.writer.Abort()
		c.log.Errorf("revision: %d  commit error: %s", revision, err)
		if fault.IsErrIO(err) || fault.IsErrIntegrity(err) || fault.IsErrInvalid(err) {
			return err
		}
		return fault.NewIOError("commit", err)
	}

	c.log.Infof("committed revision: %d  buckets: %d", revision, request.stage.log.count()+3)
	return nil
}

// submit - flush a stage and wait for the result
func (c *committer) submit(s *stage, w backend.Writer) error {
	request := commitRequest{
		stage:  s,
		writer: w,
		done:   make(chan error, 1),
	}
	select {
	case c.queue <- request:
	case <-c.finished:
		return fault.ErrSessionClosed
	}
	return <-request.done
}

// stop - wait for the current request to finish then exit
func (c *committer) stop() {
	c.process.Stop()
}
