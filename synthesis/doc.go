// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package synthesis - find values that satisfy a constraint
//
// An Oracle is asked for any value of a given kind that makes a
// predicate true.  The built in Solver knows the structure of the
// canonical hash and constructs candidates directly, checking each
// one against the full predicate before returning it.
//
// Cached and Limited wrap any Oracle to memoise results and to put a
// deadline on each call.
package synthesis
