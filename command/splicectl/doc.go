// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Inspect the sweep journal of a stopped spliced and queue redaction
// requests for a running one
//
// e.g. to show the last five sweeps and ask for label 7 to be removed:
//
//   splicectl --journal=/var/lib/spliced/data/journal.leveldb list --count=5
//   splicectl --spool=/var/lib/spliced/spool request --label=7
package main
