// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrConfigurationNotStruct = InvalidError("configuration target is not a pointer to a struct")
	ErrConfigurationNotTable  = InvalidError("configuration file did not return a table")
	ErrDatabaseIsNotSet       = ProcessError("database is not set")
	ErrHashMismatch           = InvalidError("replacement key hash differs from original")
	ErrIntegerOutOfRange      = InvalidError("integer is out of range")
	ErrInvalidBucketCount     = InvalidError("bucket count must be positive")
	ErrInvalidDirectory       = InvalidError("path is not a valid directory")
	ErrInvalidFileName        = InvalidError("file name must not contain a directory")
	ErrInvalidLabel           = InvalidError("taint label is invalid")
	ErrInvalidOutcome         = InvalidError("sweep outcome is invalid")
	ErrKeyExists              = ExistsError("key already exists")
	ErrKeyNotFound            = NotFoundError("key not found")
	ErrQueueFull              = ProcessError("request queue is full")
	ErrRateLimiting           = ProcessError("rate limiting")
	ErrReportNotFound         = NotFoundError("report not found")
	ErrSpoolNotDirectory      = InvalidError("spool path is not a directory")
	ErrUnsatisfiable          = ProcessError("predicate is unsatisfiable")
	ErrWrongRole              = InvalidError("tracked value has the wrong role")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// UnsupportedKindError - a value of a kind that cannot be tagged or
// synthesized, Kind names the offending Go kind
type UnsupportedKindError struct {
	Kind string
}

// Error - the error interface method
func (e UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported kind: %s", e.Kind)
}

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }

// IsErrUnsupportedKind - true for an UnsupportedKindError
func IsErrUnsupportedKind(e error) bool {
	_, ok := e.(UnsupportedKindError)
	return ok
}
