// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package synthesis

import (
	"context"
	"time"

	"github.com/bitmark-inc/splice/constraint"
	"github.com/bitmark-inc/splice/scalar"
)

// Result - outcome of one synthesis
//
// Satisfied is false when no value of the domain satisfies the
// predicate (or none was found within the search bounds)
type Result struct {
	Satisfied bool
	Value     scalar.Value
}

// Satisfied - a result holding a value
func Satisfied(v scalar.Value) Result {
	return Result{Satisfied: true, Value: v}
}

// Unsatisfiable - a result without a value
func Unsatisfiable() Result {
	return Result{}
}

// Oracle - the interface to a constraint solver
//
// an error is only returned when the oracle could not decide, for
// example when ctx is cancelled
type Oracle interface {
	Synthesize(ctx context.Context, predicate constraint.Expr, domain scalar.Kind) (Result, error)
}

// Limited - an oracle with a deadline on every call
type Limited struct {
	Oracle  Oracle
	Timeout time.Duration
}

// Synthesize - call the wrapped oracle with a deadline
func (l Limited) Synthesize(ctx context.Context, predicate constraint.Expr, domain scalar.Kind) (Result, error) {
	if l.Timeout <= 0 {
		return l.Oracle.Synthesize(ctx, predicate, domain)
	}
	ctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()
	return l.Oracle.Synthesize(ctx, predicate, domain)
}
