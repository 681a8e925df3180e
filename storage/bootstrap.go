// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/revstore/backend"
	"github.com/bitmark-inc/revstore/bucket"
	"github.com/bitmark-inc/revstore/fault"
	"github.com/bitmark-inc/revstore/revisioning"
)

// Create - initialise an empty resource at revision zero
//
// writes the descriptor, the revision tree path, revision root #0,
// metadata #0, the data tree path and one empty leaf as a single
// batch with the global root last
func Create(b backend.Backend, configuration Configuration) (*bucket.Descriptor, error) {
	log := logger.New("bootstrap")

	if err := configuration.Validate(); nil != err {
		return nil, err
	}

	reader, err := b.Reader()
	if nil != err {
		return nil, err
	}
	defer reader.Close()

	_, err = reader.ReadGlobalRoot()
	if nil == err {
		return nil, fault.ErrAlreadyInitialised
	} else if fault.ErrNotBootstrapped != err {
		return nil, err
	}

	strategy, err := revisioning.New(configuration.Revisioning, configuration.RestoreDepth)
	if nil != err {
		return nil, err
	}
	layout := configuration.Layout()
	descriptor := bucket.NewDescriptor(layout, configuration.RestoreDepth, strategy.Name())

	root := &bucket.GlobalRoot{}
	root.BucketKey = root.NextKey()

	revisionRoot := &bucket.RevisionRoot{
		BucketKey: root.NextKey(),
	}

	st := &stage{
		tree: &tree{
			layout:   layout,
			strategy: strategy,
			log:      log,
		},
		reader:       reader,
		log:          newLog(),
		root:         root,
		revisionRoot: revisionRoot,
		meta:         bucket.NewMeta(root.NextKey()),
	}
	if err := st.prepareRevisionSlot(); nil != err {
		return nil, err
	}
	if _, err := st.prepareLeaf(0); nil != err {
		return nil, err
	}

	w, err := b.Writer()
	if nil != err {
		return nil, err
	}
	defer w.Close()

	err = w.WriteDescriptor(descriptor)
	if nil == err {
		err = st.flush(w)
	}
	if nil == err {
		err = w.Commit()
	}
	if nil != err {
		w.Abort()
		log.Errorf("create error: %s", err)
		return nil, err
	}

	log.Infof("created resource: %s  layout: %s  revisioning: %s/%d  buckets: %d",
		descriptor.ResourceID, layout, strategy.Name(), configuration.RestoreDepth, root.Counter)
	return descriptor, nil
}
