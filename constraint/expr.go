// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constraint

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/splice/scalar"
)

// Expr - a symbolic expression
type Expr interface {
	String() string
	expr()
}

// CandidateExpr - the free variable
type CandidateExpr struct{}

// LiteralExpr - a constant scalar
type LiteralExpr struct {
	Value scalar.Value
}

// NumberExpr - a constant hash value
type NumberExpr struct {
	N uint64
}

// HashExpr - the canonical hash of a scalar expression
type HashExpr struct {
	Arg Expr
}

// EqExpr - equality
type EqExpr struct {
	LHS Expr
	RHS Expr
}

// NotExpr - negation
type NotExpr struct {
	Expr Expr
}

// AndExpr - conjunction, at least two terms
type AndExpr struct {
	Terms []Expr
}

// TrueExpr - always satisfied
type TrueExpr struct{}

func (*CandidateExpr) expr() {}
func (*LiteralExpr) expr()   {}
func (*NumberExpr) expr()    {}
func (*HashExpr) expr()      {}
func (*EqExpr) expr()        {}
func (*NotExpr) expr()       {}
func (*AndExpr) expr()       {}
func (*TrueExpr) expr()      {}

// constructors

// Candidate - the free variable
func Candidate() Expr { return &CandidateExpr{} }

// Literal - constant scalar
func Literal(v scalar.Value) Expr { return &LiteralExpr{Value: v} }

// Number - constant hash
func Number(n uint64) Expr { return &NumberExpr{N: n} }

// HashOf - hash of an expression
func HashOf(e Expr) Expr { return &HashExpr{Arg: e} }

// Eq - equality of two expressions
func Eq(lhs Expr, rhs Expr) Expr { return &EqExpr{LHS: lhs, RHS: rhs} }

// Not - negation
func Not(e Expr) Expr { return &NotExpr{Expr: e} }

// True - the trivial predicate
func True() Expr { return &TrueExpr{} }

// And - conjunction of the terms
//
// nested conjunctions are flattened and True terms dropped; no terms
// gives True and a single term is returned unchanged
func And(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		switch e := t.(type) {
		case *TrueExpr:
		case *AndExpr:
			flat = append(flat, e.Terms...)
		default:
			flat = append(flat, t)
		}
	}
	switch len(flat) {
	case 0:
		return True()
	case 1:
		return flat[0]
	}
	return &AndExpr{Terms: flat}
}

// String methods, the result is used as a cache fingerprint so must
// be deterministic

func (*CandidateExpr) String() string { return "candidate" }
func (e *LiteralExpr) String() string { return e.Value.String() }
func (e *NumberExpr) String() string  { return fmt.Sprintf("%d", e.N) }
func (e *HashExpr) String() string    { return "hash(" + e.Arg.String() + ")" }
func (e *EqExpr) String() string      { return "eq(" + e.LHS.String() + ", " + e.RHS.String() + ")" }
func (e *NotExpr) String() string     { return "not(" + e.Expr.String() + ")" }
func (*TrueExpr) String() string      { return "true" }
func (e *AndExpr) String() string {
	s := make([]string, len(e.Terms))
	for i, t := range e.Terms {
		s[i] = t.String()
	}
	return "and(" + strings.Join(s, ", ") + ")"
}
