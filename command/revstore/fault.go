// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/revstore/fault"
)

// command errors - keep in alphabetic order
const (
	ErrInvalidKey         = fault.InvalidError("invalid item key")
	ErrMissingItem        = fault.InvalidError("no item given")
	ErrMissingKey         = fault.InvalidError("no item key given")
	ErrMissingName        = fault.InvalidError("no metadata name given")
	ErrTruncateNotConfirm = fault.InvalidError("truncate requires --yes")
)
