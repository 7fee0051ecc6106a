// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tracked - values that carry a taint tag
//
// A tracked value is either detached (created by the taint subsystem
// and not stored anywhere yet), or the key or the value of an entry
// in a Container.  Every change to its tag or content bumps its
// generation, so a redaction that read the value earlier can tell
// whether what it is about to act on is still the same thing.
//
// Lock order: an Index or Container may lock a value while holding
// its own lock, a value never calls out while locked.
package tracked
