// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sweep

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/google/uuid"

	"github.com/bitmark-inc/splice/constraint"
	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/scalar"
	"github.com/bitmark-inc/splice/synthesis"
	"github.com/bitmark-inc/splice/taint"
	"github.com/bitmark-inc/splice/tracked"
)

// DefaultRetries - attempts after the first when a value changes
// between reading and applying
const DefaultRetries = 2

// Scope - source of the values carrying a label
type Scope interface {
	Snapshot(taint.Label) ([]*tracked.Value, uint64)
}

// Options - sweep behaviour
type Options struct {
	RequireDistinct bool // a replacement must differ from the original
	Retries         int  // < 0 disables retries, 0 selects the default
}

// Sweeper - runs redactions against one scope
type Sweeper struct {
	scope   Scope
	oracle  synthesis.Oracle
	options Options
	log     *logger.L
}

// New - create a sweeper, the logger must be initialised
func New(scope Scope, oracle synthesis.Oracle, options Options) *Sweeper {
	if 0 == options.Retries {
		options.Retries = DefaultRetries
	} else if options.Retries < 0 {
		options.Retries = 0
	}
	return &Sweeper{
		scope:   scope,
		oracle:  oracle,
		options: options,
		log:     logger.New("sweep"),
	}
}

// Run - redact every value carrying label
//
// never fails, a cancelled ctx marks the remaining values aborted
func (s *Sweeper) Run(ctx context.Context, label taint.Label) *Report {
	report := &Report{
		ID:      uuid.New().String(),
		Label:   label,
		Started: time.Now().UTC(),
		Entries: []Entry{},
	}

	values, generation := s.scope.Snapshot(label)
	s.log.Infof("sweep: %s  label: %s  values: %d  generation: %d", report.ID, label, len(values), generation)

	for _, v := range values {
		e := s.redact(ctx, label, v)
		outcomeTotal.WithLabelValues(e.Outcome.String()).Inc()
		report.add(e)
	}

	report.Finished = time.Now().UTC()
	sweepDuration.Observe(report.Finished.Sub(report.Started).Seconds())
	s.log.Infof("sweep: %s  finished: %v", report.ID, report.Counts())
	return report
}

// one value, retrying while it changes under us
func (s *Sweeper) redact(ctx context.Context, label taint.Label, v *tracked.Value) Entry {
	e := Entry{
		Value: v.ID(),
	}

	var excluded []scalar.Value
	var collision error

	for attempt := 0; attempt <= s.options.Retries; attempt += 1 {
		e.Attempts = attempt + 1

		st := v.State()
		e.Role = st.Role.String()
		e.Kind = st.Concrete.RawKind()

		if err := ctx.Err(); nil != err {
			e.Outcome = Aborted
			e.err = err
			return e
		}
		if !st.Live || label != st.Tag.Label {
			e.Outcome = Stale
			return e
		}

		kind := st.Concrete.Kind()
		if !kind.Synthesizable() {
			if !v.Degrade(st.Generation) {
				continue
			}
			s.log.Warnf("%s: unsupported kind: %s", v, e.Kind)
			e.Outcome = UnsupportedType
			e.err = fault.UnsupportedKindError{Kind: e.Kind}
			return e
		}

		predicate := s.predicate(st, excluded)

		start := time.Now()
		result, err := s.oracle.Synthesize(ctx, predicate, kind)
		oracleDuration.Observe(time.Since(start).Seconds())

		if nil != err && nil != ctx.Err() {
			e.Outcome = Aborted
			e.err = ctx.Err()
			return e
		}
		if nil != err || !result.Satisfied {
			if nil == err {
				err = fault.ErrUnsatisfiable
			}
			if !v.Degrade(st.Generation) {
				continue
			}
			s.log.Warnf("%s: degraded: %s", v, err)
			e.Outcome = Degraded
			e.err = err
			return e
		}

		applied, err := s.apply(v, st, result.Value)
		if fault.ErrKeyExists == err {
			// another key already has this content, ask again without it
			s.log.Debugf("%s: candidate %s collides", v, result.Value)
			excluded = append(excluded, result.Value)
			collision = err
			continue
		}
		if nil != err {
			if !v.Degrade(st.Generation) {
				continue
			}
			s.log.Errorf("%s: replacement rejected: %s", v, err)
			e.Outcome = Degraded
			e.err = err
			return e
		}
		if applied {
			s.log.Debugf("%s: replaced", v)
			e.Outcome = Replaced
			return e
		}
	}

	// out of attempts, drop trust rather than leave the label behind
	if nil != collision {
		st := v.State()
		if st.Live && label == st.Tag.Label && v.Degrade(st.Generation) {
			e.Outcome = Degraded
			e.err = collision
			return e
		}
	}
	e.Outcome = Stale
	return e
}

// the conjunction of the value's constraints bound to its current
// content and container
func (s *Sweeper) predicate(st tracked.State, excluded []scalar.Value) constraint.Expr {
	var enclosing constraint.Enclosing
	if nil != st.Container {
		enclosing = st.Container
	}
	exprs := constraint.Concretize(st.Tag.Constraints, st.Concrete, enclosing)
	if s.options.RequireDistinct {
		exprs = append(exprs, differs(st.Concrete))
	}
	for _, x := range excluded {
		exprs = append(exprs, differs(x))
	}
	return constraint.Conjoin(exprs)
}

func differs(v scalar.Value) constraint.Expr {
	return constraint.Not(constraint.Eq(constraint.Candidate(), constraint.Literal(v)))
}

// put a replacement in place through the value's container
func (s *Sweeper) apply(v *tracked.Value, st tracked.State, replacement scalar.Value) (bool, error) {
	switch st.Role {
	case tracked.Detached:
		return v.Overwrite(st.Generation, replacement), nil
	case tracked.AsKey:
		if nil == st.Container {
			return false, fault.ErrWrongRole
		}
		return st.Container.SubstituteKey(v, st.Generation, replacement)
	case tracked.AsValue:
		if nil == st.Container {
			return false, fault.ErrWrongRole
		}
		return st.Container.ReplaceValue(v, st.Generation, replacement)
	default:
		return false, fault.ErrWrongRole
	}
}
