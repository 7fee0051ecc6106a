// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/scalar"
)

// error instances for malformed expressions
var (
	ErrTypeMismatch = fault.InvalidError("expression operands have different types")
	ErrNotBoolean   = fault.InvalidError("expression is not boolean")
	ErrNotScalar    = fault.InvalidError("hash argument is not a scalar")
	ErrUnknownExpr  = fault.InvalidError("unknown expression")
)

type termType int

const (
	scalarTerm termType = iota
	numberTerm
	boolTerm
)

// result of evaluating a sub-expression
type term struct {
	t      termType
	scalar scalar.Value
	number uint64
	truth  bool
}

// Evaluate - substitute candidate for the free variable and compute
// the truth of a predicate
func Evaluate(e Expr, candidate scalar.Value) (bool, error) {
	r, err := evaluate(e, candidate)
	if nil != err {
		return false, err
	}
	if boolTerm != r.t {
		return false, ErrNotBoolean
	}
	return r.truth, nil
}

func evaluate(e Expr, candidate scalar.Value) (term, error) {
	switch x := e.(type) {

	case *CandidateExpr:
		return term{t: scalarTerm, scalar: candidate}, nil

	case *LiteralExpr:
		return term{t: scalarTerm, scalar: x.Value}, nil

	case *NumberExpr:
		return term{t: numberTerm, number: x.N}, nil

	case *TrueExpr:
		return term{t: boolTerm, truth: true}, nil

	case *HashExpr:
		a, err := evaluate(x.Arg, candidate)
		if nil != err {
			return term{}, err
		}
		if scalarTerm != a.t {
			return term{}, ErrNotScalar
		}
		if !a.scalar.Kind().Synthesizable() {
			return term{}, fault.UnsupportedKindError{Kind: a.scalar.RawKind()}
		}
		return term{t: numberTerm, number: a.scalar.Hash()}, nil

	case *EqExpr:
		l, err := evaluate(x.LHS, candidate)
		if nil != err {
			return term{}, err
		}
		r, err := evaluate(x.RHS, candidate)
		if nil != err {
			return term{}, err
		}
		if l.t != r.t {
			return term{}, ErrTypeMismatch
		}
		switch l.t {
		case scalarTerm:
			return term{t: boolTerm, truth: l.scalar.Same(r.scalar)}, nil
		case numberTerm:
			return term{t: boolTerm, truth: l.number == r.number}, nil
		default:
			return term{t: boolTerm, truth: l.truth == r.truth}, nil
		}

	case *NotExpr:
		a, err := evaluate(x.Expr, candidate)
		if nil != err {
			return term{}, err
		}
		if boolTerm != a.t {
			return term{}, ErrNotBoolean
		}
		return term{t: boolTerm, truth: !a.truth}, nil

	case *AndExpr:
		result := true
		for _, t := range x.Terms {
			a, err := evaluate(t, candidate)
			if nil != err {
				return term{}, err
			}
			if boolTerm != a.t {
				return term{}, ErrNotBoolean
			}
			result = result && a.truth
		}
		return term{t: boolTerm, truth: result}, nil
	}
	return term{}, ErrUnknownExpr
}

// HashTargets - the constants that hash(candidate) is required to
// equal by the top level conjuncts of a predicate
func HashTargets(e Expr) []uint64 {
	targets := []uint64{}
	var conjuncts []Expr
	if a, ok := e.(*AndExpr); ok {
		conjuncts = a.Terms
	} else {
		conjuncts = []Expr{e}
	}
	for _, c := range conjuncts {
		eq, ok := c.(*EqExpr)
		if !ok {
			continue
		}
		if n, ok := hashOfCandidate(eq.LHS, eq.RHS); ok {
			targets = append(targets, n)
		} else if n, ok := hashOfCandidate(eq.RHS, eq.LHS); ok {
			targets = append(targets, n)
		}
	}
	return targets
}

// match hash(candidate) == number
func hashOfCandidate(h Expr, n Expr) (uint64, bool) {
	hx, ok := h.(*HashExpr)
	if !ok {
		return 0, false
	}
	if _, ok := hx.Arg.(*CandidateExpr); !ok {
		return 0, false
	}
	nx, ok := n.(*NumberExpr)
	if !ok {
		return 0, false
	}
	return nx.N, true
}
