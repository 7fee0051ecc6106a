// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sweep - forget everything carrying a taint label
//
// A sweep takes every live value with the label, asks an oracle for a
// replacement that satisfies the value's constraints and puts the
// replacement in place through the value's container.  When no
// replacement can be found the value is left in storage but loses its
// label and its trust.  Every value gets exactly one outcome in the
// report and no failure stops the sweep.
package sweep
