// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package constraint - symbolic predicates over a single candidate
// value
//
// A container attaches Closures to the keys it stores.  At redaction
// time each closure is concretized against the tracked value and its
// container, giving an Expr in which Candidate is the only free
// variable.  The Exprs of one value are joined with And and handed to
// a synthesis oracle.
//
// The expression nodes are a closed set:
//
//   Candidate            the value being synthesized
//   Literal(v)           a constant scalar
//   Number(n)            a constant hash
//   HashOf(e)            canonical hash of a scalar expression
//   Eq(a, b)             equality of two scalars or two numbers
//   Not(e), And(e...)    boolean connectives
//   True                 the trivial predicate
package constraint
