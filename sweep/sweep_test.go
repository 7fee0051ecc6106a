// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sweep_test

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/splice/constraint"
	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/fixtures"
	"github.com/bitmark-inc/splice/registry"
	"github.com/bitmark-inc/splice/scalar"
	"github.com/bitmark-inc/splice/splicemap"
	"github.com/bitmark-inc/splice/sweep"
	"github.com/bitmark-inc/splice/synthesis"
	"github.com/bitmark-inc/splice/synthesis/mocks"
	"github.com/bitmark-inc/splice/taint"
	"github.com/bitmark-inc/splice/tracked"
)

const label = taint.Label(42)

func setup(t *testing.T) (*registry.Registry, *splicemap.Map, *gomock.Controller, *mocks.MockOracle) {
	fixtures.SetupTestLogger()
	t.Cleanup(fixtures.TeardownTestLogger)

	ctl := gomock.NewController(t)

	r := registry.New()
	return r, splicemap.New(r), ctl, mocks.NewMockOracle(ctl)
}

func TestKeySubstitution(t *testing.T) {
	r, m, _, oracle := setup(t)

	key := tracked.New(r, "FGHI", label, true)
	require.NoError(t, m.Set(key, 9876))

	oracle.EXPECT().Synthesize(gomock.Any(), gomock.Any(), scalar.Text).DoAndReturn(
		func(_ context.Context, p constraint.Expr, _ scalar.Kind) (synthesis.Result, error) {
			assert.Equal(t, "eq(hash(candidate), 1061)", p.String())
			return synthesis.Satisfied(scalar.NewText("FGGK")), nil
		})

	report := sweep.New(r, oracle, sweep.Options{}).Run(context.Background(), label)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, sweep.Replaced, report.Entries[0].Outcome)
	assert.Equal(t, "key", report.Entries[0].Role)
	assert.NoError(t, report.Err())
	assert.NotEmpty(t, report.ID)

	_, err := m.Get("FGHI")
	assert.Equal(t, fault.ErrKeyNotFound, err)
	v, err := m.Get("FGGK")
	require.NoError(t, err)
	assert.Equal(t, int64(9876), v)

	tag, err := m.KeyTag("FGGK")
	require.NoError(t, err)
	assert.True(t, tag.Synthesized)
	assert.True(t, tag.Trusted)
	assert.Equal(t, 0, r.Count(label))

	// the value object is kept under the new key and marked synthesized
	tag, err = m.ValueTag("FGGK")
	require.NoError(t, err)
	assert.True(t, tag.Synthesized)
	assert.True(t, tag.Trusted)
	value, err := m.Lookup("FGGK")
	require.NoError(t, err)
	assert.Equal(t, "FGGK", value.State().Owner.Scalar().Str())
}

func TestUnsatisfiableDegrades(t *testing.T) {
	r, m, _, oracle := setup(t)

	key := tracked.New(r, "FGHI", label, true)
	require.NoError(t, m.Set(key, 9876))

	oracle.EXPECT().Synthesize(gomock.Any(), gomock.Any(), gomock.Any()).Return(synthesis.Unsatisfiable(), nil)

	report := sweep.New(r, oracle, sweep.Options{}).Run(context.Background(), label)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, sweep.Degraded, report.Entries[0].Outcome)
	assert.Equal(t, 1, report.Count(sweep.Degraded))

	tag, err := m.KeyTag("FGHI")
	require.NoError(t, err)
	assert.False(t, tag.Trusted)
	assert.True(t, tag.Synthesized)
	assert.True(t, tag.Label.IsEmpty())

	v, err := m.Get("FGHI")
	require.NoError(t, err)
	assert.Equal(t, int64(9876), v)
}

func TestUnsupportedKind(t *testing.T) {
	r, _, _, oracle := setup(t)

	f := tracked.New(r, 3.25, label, true)
	oracle.EXPECT().Synthesize(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	report := sweep.New(r, oracle, sweep.Options{}).Run(context.Background(), label)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, sweep.UnsupportedType, report.Entries[0].Outcome)
	assert.Equal(t, "float64", report.Entries[0].Kind)

	err := report.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported kind: float64")

	assert.Equal(t, 3.25, f.Scalar().Interface(), "content must not change")
	assert.False(t, f.Tag().Trusted)
}

func TestOracleErrorDegrades(t *testing.T) {
	r, _, _, oracle := setup(t)

	v := tracked.New(r, "secret", label, true)
	oracle.EXPECT().Synthesize(gomock.Any(), gomock.Any(), gomock.Any()).Return(synthesis.Unsatisfiable(), context.DeadlineExceeded)

	report := sweep.New(r, oracle, sweep.Options{}).Run(context.Background(), label)
	assert.Equal(t, sweep.Degraded, report.Entries[0].Outcome)
	assert.Equal(t, context.DeadlineExceeded.Error(), report.Entries[0].Error)
	assert.Equal(t, "secret", v.Scalar().Str())
}

func TestCollisionRetries(t *testing.T) {
	r, m, _, oracle := setup(t)

	key := tracked.New(r, "FGHI", label, true)
	require.NoError(t, m.Set(key, 1))
	require.NoError(t, m.Set("FGGK", 2))

	gomock.InOrder(
		oracle.EXPECT().Synthesize(gomock.Any(), gomock.Any(), scalar.Text).Return(synthesis.Satisfied(scalar.NewText("FGGK")), nil),
		oracle.EXPECT().Synthesize(gomock.Any(), gomock.Any(), scalar.Text).DoAndReturn(
			func(_ context.Context, p constraint.Expr, _ scalar.Kind) (synthesis.Result, error) {
				assert.True(t, strings.Contains(p.String(), `not(eq(candidate, "FGGK"))`))
				return synthesis.Satisfied(scalar.NewText("EIHI")), nil
			}),
	)

	report := sweep.New(r, oracle, sweep.Options{}).Run(context.Background(), label)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, sweep.Replaced, report.Entries[0].Outcome)
	assert.Equal(t, 2, report.Entries[0].Attempts)

	v, err := m.Get("EIHI")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	v, err = m.Get("FGGK")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestDeletedDuringSynthesis(t *testing.T) {
	r, m, _, oracle := setup(t)

	key := tracked.New(r, "FGHI", label, true)
	require.NoError(t, m.Set(key, 1))

	oracle.EXPECT().Synthesize(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, constraint.Expr, scalar.Kind) (synthesis.Result, error) {
			m.Delete("FGHI")
			return synthesis.Satisfied(scalar.NewText("FGGK")), nil
		})

	report := sweep.New(r, oracle, sweep.Options{}).Run(context.Background(), label)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, sweep.Stale, report.Entries[0].Outcome)
	assert.Equal(t, 0, m.Size())
	assert.False(t, m.Contains("FGGK"))
}

func TestCancelled(t *testing.T) {
	r, _, _, oracle := setup(t)

	tracked.New(r, "a", label, true)
	tracked.New(r, "b", label, true)
	oracle.EXPECT().Synthesize(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := sweep.New(r, oracle, sweep.Options{}).Run(ctx, label)
	assert.Equal(t, 2, report.Count(sweep.Aborted))
	assert.Equal(t, 2, r.Count(label), "aborted values keep their label")
}

func TestDistinctIntegerKeyDegrades(t *testing.T) {
	r, m, _, _ := setup(t)

	key := tracked.New(r, 50, label, true)
	require.NoError(t, m.Set(key, 12345))

	solver := synthesis.NewSolver(synthesis.Options{})

	report := sweep.New(r, solver, sweep.Options{RequireDistinct: true}).Run(context.Background(), label)
	assert.Equal(t, sweep.Degraded, report.Entries[0].Outcome)

	// without the restriction the key is replaced by itself
	key = tracked.New(r, 51, label, true)
	require.NoError(t, m.Set(key, 1))

	report = sweep.New(r, solver, sweep.Options{}).Run(context.Background(), label)
	assert.Equal(t, sweep.Replaced, report.Entries[0].Outcome)
	tag, err := m.KeyTag(51)
	require.NoError(t, err)
	assert.True(t, tag.Synthesized)
}

func TestCompleteness(t *testing.T) {
	r, m, _, _ := setup(t)

	require.NoError(t, m.SetWithLabel("FGHI", "alice@example.com", label))
	require.NoError(t, m.SetWithLabel(50, 12345, label))
	require.NoError(t, m.SetWithLabel("unrelated", "kept", 7))
	require.NoError(t, m.Set("plain", "kept"))
	tracked.New(r, "detached", label, true)
	tracked.New(r, 2.5, label, true)
	tracked.New(r, []int{1}, label, false)

	before, _ := r.Snapshot(label)
	require.Len(t, before, 7)

	solver := synthesis.NewCached(synthesis.NewSolver(synthesis.Options{}), 0)
	report := sweep.New(r, solver, sweep.Options{RequireDistinct: true}).Run(context.Background(), label)

	assert.Len(t, report.Entries, len(before))
	assert.Equal(t, 2, report.Count(sweep.UnsupportedType))
	assert.Equal(t, 0, report.Count(sweep.Stale))
	assert.Equal(t, 0, r.Count(label))

	for _, v := range before {
		assert.False(t, v.Tag().Pending(label), v.String())
	}

	// the text key moved within its chain and every other entry survived
	assert.Equal(t, 4, m.Size())
	assert.False(t, m.Contains("FGHI"))
	assert.True(t, m.Contains(50), "integer keys can only degrade when a distinct value is required")
	v, err := m.Get("unrelated")
	require.NoError(t, err)
	assert.Equal(t, "kept", v)
	assert.Equal(t, 2, r.Count(7))
}
