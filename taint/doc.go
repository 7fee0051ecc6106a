// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package taint - ownership labels and the constraint tag that a
// tracked value carries
//
// A label identifies the principal whose data a value holds.  The
// zero label is Empty and means the value is not sensitive.
package taint
