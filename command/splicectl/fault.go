// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/splice/fault"
)

// common errors - keep in alphabetic order
const (
	ErrJournalRequired  = fault.InvalidError("journal directory is required")
	ErrLabelRequired    = fault.InvalidError("non-zero label is required")
	ErrReportIDRequired = fault.InvalidError("report id is required")
	ErrSpoolRequired    = fault.InvalidError("spool directory is required")
)
