// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hasher - the canonical hash used for table placement and
// by the synthesis predicates
//
// The functions here are the only hash in the system.  A table
// places a key in bucket Bucket(hash, n) and the synthesis oracle is
// asked for a candidate whose hash is exactly equal, so any other
// hash would move synthesized keys out of their chain.
//
// Both functions are linear so that a solver can reason about them:
//
//   text:    h = h * 2 + byte   (left to right, from h = 0)
//   integer: h = uint64(n)      (two's complement reinterpretation)
//
// All arithmetic is modulo 2^64.
package hasher
