// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package redactor - background service that turns deletion requests
// into redaction sweeps
//
// Requests name a taint label.  They arrive through Submit or as
// files dropped into a spool directory, are rate limited and then
// swept one at a time.  Each sweep report is handed to a recorder,
// normally the journal.
package redactor
