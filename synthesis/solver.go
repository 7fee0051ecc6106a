// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package synthesis

import (
	"context"
	"math/rand"

	"github.com/bitmark-inc/splice/constraint"
	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/scalar"
)

// bounds of the search
const (
	DefaultMaxAttempts = 4096
	MaxTextLength      = 56 // longest text whose fold cannot overflow 64 bits
	randomVariants     = 6
)

// byte ranges tried in order, so replacements stay readable when
// they can
var alphabets = [][2]uint64{
	{'a', 'z'},
	{' ', '~'},
	{0, 255},
}

// Options - solver configuration
type Options struct {
	MaxAttempts int   // candidates checked per call, <= 0 selects the default
	Seed        int64 // seed for the random variants
}

// Solver - generate and check oracle for the canonical hash
type Solver struct {
	options Options
}

// NewSolver - create a solver
func NewSolver(options Options) *Solver {
	if options.MaxAttempts <= 0 {
		options.MaxAttempts = DefaultMaxAttempts
	}
	return &Solver{
		options: options,
	}
}

// Synthesize - the first generated candidate the predicate accepts
//
// conflicting hash targets are unsatisfiable without search
func (s *Solver) Synthesize(ctx context.Context, predicate constraint.Expr, domain scalar.Kind) (Result, error) {
	if !domain.Synthesizable() {
		return Unsatisfiable(), fault.UnsupportedKindError{Kind: domain.String()}
	}

	target, constrained, ok := singleTarget(constraint.HashTargets(predicate))
	if !ok {
		return Unsatisfiable(), nil
	}

	result := Unsatisfiable()
	var failure error
	attempts := 0

	check := func(candidate scalar.Value) bool {
		if err := ctx.Err(); nil != err {
			failure = err
			return false
		}
		if attempts >= s.options.MaxAttempts {
			return false
		}
		attempts += 1

		accepted, err := constraint.Evaluate(predicate, candidate)
		if nil != err {
			failure = err
			return false
		}
		if accepted {
			result = Satisfied(candidate)
			return false
		}
		return true
	}

	switch domain {
	case scalar.Integer:
		integers(target, constrained, check)
	case scalar.Text:
		rng := rand.New(rand.NewSource(s.options.Seed))
		texts(target, constrained, rng, check)
	}

	if nil != failure {
		return Unsatisfiable(), failure
	}
	return result, nil
}

// all targets must agree
func singleTarget(targets []uint64) (uint64, bool, bool) {
	if 0 == len(targets) {
		return 0, false, true
	}
	for _, t := range targets[1:] {
		if t != targets[0] {
			return 0, true, false
		}
	}
	return targets[0], true, true
}

// the integer hash is the identity on the 64 bit pattern, so a
// target has exactly one preimage
func integers(target uint64, constrained bool, f func(scalar.Value) bool) {
	if constrained {
		f(scalar.NewInteger(int64(target)))
		return
	}
	if !f(scalar.NewInteger(0)) {
		return
	}
	for n := int64(1); ; n += 1 {
		if !f(scalar.NewInteger(n)) || !f(scalar.NewInteger(-n)) {
			return
		}
	}
}

// text candidates, shortest first
func texts(target uint64, constrained bool, rng *rand.Rand, f func(scalar.Value) bool) {
	if !constrained {
		for n := 0; ; n += 1 {
			if !f(scalar.NewText(enumerate(n))) {
				return
			}
		}
	}

	for _, a := range alphabets {
		for n := 0; n <= MaxTextLength; n += 1 {
			for variant := 0; variant < 2+randomVariants; variant += 1 {
				b, ok := fold(target, n, a[0], a[1], variant, rng)
				if !ok {
					break
				}
				if !f(scalar.NewText(string(b))) {
					return
				}
			}
		}
	}
}

// n-th string over a..z in length then lexical order, starting with
// the empty string
func enumerate(n int) string {
	s := []byte{}
	for n > 0 {
		n -= 1
		s = append([]byte{byte('a' + n%26)}, s...)
		n /= 26
	}
	return string(s)
}

// fold - construct n bytes in [lo, hi] whose hash is exactly target
//
// the hash of b is sum(b[i] * 2^(n-1-i)), each step picks a byte
// leaving a remainder that the remaining positions can still reach.
// variant 0 takes the largest byte, 1 the smallest and the rest a
// random one in range
func fold(target uint64, n int, lo uint64, hi uint64, variant int, rng *rand.Rand) ([]byte, bool) {
	if 0 == n {
		return []byte{}, 0 == target
	}

	span := uint64(1)<<uint(n) - 1
	if target < lo*span || target > hi*span {
		return nil, false
	}

	b := make([]byte, n)
	r := target
	for i := 0; i < n; i += 1 {
		w := uint64(1) << uint(n-1-i)
		rest := w - 1

		low := lo
		if r > hi*rest {
			low = (r - hi*rest + w - 1) / w
			if low < lo {
				low = lo
			}
		}
		high := (r - lo*rest) / w
		if high > hi {
			high = hi
		}
		if low > high {
			return nil, false
		}

		c := high
		switch variant {
		case 0:
		case 1:
			c = low
		default:
			c = low + uint64(rng.Int63n(int64(high-low+1)))
		}
		b[i] = byte(c)
		r -= c * w
	}
	return b, 0 == r
}
