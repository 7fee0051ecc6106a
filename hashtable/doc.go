// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashtable - a fixed capacity chained hash table whose keys
// can be substituted in place
//
// The number of buckets is set at creation and never changes.  There
// is no rehashing, so chains simply grow as more items are inserted;
// this is an accepted limitation.
//
// A key k always lives in chain Bucket(k.Hash(), n).  SubstituteKey
// replaces a stored key with another key of exactly the same hash
// without moving the entry, which keeps that placement valid and
// keeps any structure outside the table that indexes by the hash
// consistent.
//
// Note: mutators take a write lock and readers a read lock, so a
//       table can be shared between go routines.  An Iterator only
//       locks for each step and so is not a snapshot.
package hashtable
