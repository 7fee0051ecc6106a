// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package journal - on-disk audit trail of redaction sweeps
//
// A LevelDB database split into tables by a single prefix byte.  Only
// sweep reports are stored, never the content that was redacted.
//
// Notes:
// 1. each table has a single byte prefix
// 2. ++      = concatenation of byte data
// 3. started = sweep start time as big endian unix nanoseconds (8 bytes)
// 4. id      = report uuid in its 36 byte text form
// 5. label   = taint label as big endian uint64 (8 bytes)
//
// Reports:
//
//   R ++ started ++ id         - sweep report
//                                data: JSON encoded report
//
// Indexes:
//
//   I ++ id                    - report lookup
//                                data: R key
//   L ++ label ++ started ++ id
//                              - reports for one label
//                                data: R key
package journal
