// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Errors fall into three groups: usage errors (InvalidError,
// ExistsError, NotFoundError) raised by callers doing something
// wrong, I/O errors (IOError) wrapping a backend failure and
// integrity errors (IntegrityError) for a corrupt bucket graph
package fault
