// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/bitmark-inc/splice/scalar"
)

// Enclosing - the container side of a closure
type Enclosing interface {
	Hash(scalar.Value) uint64
}

// Closure - a symbolic predicate attached to a tracked value
//
// subject is the tracked value's current content and enclosing is
// the container that attached the closure (may be nil)
type Closure func(subject scalar.Value, enclosing Enclosing) Expr

// EqualHash - closure requiring hash(candidate) == hash(original)
//
// the hash is taken from the enclosing container so that the
// predicate uses the same function the container places keys with
func EqualHash(original scalar.Value) Closure {
	return func(_ scalar.Value, enclosing Enclosing) Expr {
		h := original.Hash()
		if nil != enclosing {
			h = enclosing.Hash(original)
		}
		return Eq(HashOf(Candidate()), Number(h))
	}
}

// Concretize - bind every closure to a subject and container
func Concretize(closures []Closure, subject scalar.Value, enclosing Enclosing) []Expr {
	exprs := make([]Expr, 0, len(closures))
	for _, c := range closures {
		if nil == c {
			continue
		}
		exprs = append(exprs, c(subject, enclosing))
	}
	return exprs
}

// Conjoin - merge concrete predicates into one, True if there are none
func Conjoin(exprs []Expr) Expr {
	return And(exprs...)
}
