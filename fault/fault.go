// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"github.com/pkg/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type IntegrityError GenericError
type InvalidError GenericError
type NotFoundError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised       = ExistsError("already initialised")
	ErrBucketMissing            = IntegrityError("referenced bucket is missing")
	ErrBucketNotFound           = NotFoundError("bucket not found")
	ErrChainBroken              = IntegrityError("leaf chain ends without a full bucket")
	ErrChainTooLong             = IntegrityError("leaf chain exceeds restore depth")
	ErrCorruptBucket            = IntegrityError("bucket cannot be decoded")
	ErrDescriptorNotFound       = NotFoundError("resource descriptor not found")
	ErrHashMismatch             = IntegrityError("bucket hash does not match reference")
	ErrInvalidBucketKind        = IntegrityError("bucket has unexpected kind")
	ErrInvalidCount             = InvalidError("invalid count")
	ErrInvalidLayout            = InvalidError("invalid tree layout")
	ErrInvalidRestoreDepth      = InvalidError("restore depth must be at least one")
	ErrInvalidRevisioning       = InvalidError("unknown revisioning strategy")
	ErrItemKeyNotAllocated      = InvalidError("item key is not allocated")
	ErrKeyOutOfRange            = InvalidError("key exceeds tree capacity")
	ErrModificationInProgress   = InvalidError("another slot modification is in progress")
	ErrNoModificationInProgress = InvalidError("no slot modification is in progress")
	ErrNotBootstrapped          = NotFoundError("resource is not bootstrapped")
	ErrNotFoundConfigFile       = NotFoundError("config file is not found")
	ErrReadOnly                 = InvalidError("database is read only")
	ErrRevisionNotCommitted     = InvalidError("revision is beyond last committed revision")
	ErrRevisionNotFound         = IntegrityError("revision root is missing")
	ErrSessionClosed            = InvalidError("session is closed")
	ErrSlotOutOfRange           = IntegrityError("slot offset outside of bucket")
	ErrTransactionClosed        = InvalidError("transaction is closed")
	ErrUncommittedChanges       = InvalidError("transaction has uncommitted changes")
	ErrUnsupportedDatabase      = InvalidError("unsupported database engine")
	ErrUnsupportedVersion       = InvalidError("unsupported database version")
	ErrWriteTransactionInUse    = InvalidError("write transaction already open")
	ErrWriterInTransaction      = InvalidError("writer already in transaction")
)

// IOError - a backend failure wrapping the underlying cause
type IOError struct {
	Op  string
	Err error
}

// NewIOError - wrap a backend error, nil stays nil
func NewIOError(op string, err error) error {
	if nil == err {
		return nil
	}
	return &IOError{Op: op, Err: err}
}

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string    { return string(e) }
func (e IntegrityError) Error() string { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }

func (e *IOError) Error() string { return "i/o error: " + e.Op + ": " + e.Err.Error() }
func (e *IOError) Unwrap() error { return e.Err }

// determine the class of an error
func IsErrExists(e error) bool    { var t ExistsError; return errors.As(e, &t) }
func IsErrIntegrity(e error) bool { var t IntegrityError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool   { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool  { var t NotFoundError; return errors.As(e, &t) }
func IsErrIO(e error) bool        { var t *IOError; return errors.As(e, &t) }
