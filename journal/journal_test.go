// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/fixtures"
	"github.com/bitmark-inc/splice/journal"
	"github.com/bitmark-inc/splice/sweep"
	"github.com/bitmark-inc/splice/taint"
)

func newReport(label taint.Label, started time.Time, outcomes ...sweep.Outcome) *sweep.Report {
	r := &sweep.Report{
		ID:       uuid.New().String(),
		Label:    label,
		Started:  started,
		Finished: started.Add(time.Millisecond),
		Entries:  []sweep.Entry{},
	}
	for i, o := range outcomes {
		e := sweep.Entry{
			Value:    uint64(i + 1),
			Role:     "key",
			Kind:     "text",
			Outcome:  o,
			Attempts: 1,
		}
		if sweep.Degraded == o {
			e.Error = fault.ErrUnsatisfiable.Error()
		}
		r.Entries = append(r.Entries, e)
	}
	return r
}

func open(t *testing.T) *journal.Journal {
	fixtures.SetupTestLogger()
	t.Cleanup(fixtures.TeardownTestLogger)

	j, err := journal.Open(fixtures.Path("journal.leveldb"), journal.ReadWrite)
	require.NoError(t, err)
	return j
}

func TestRecordAndGet(t *testing.T) {
	j := open(t)
	defer j.Close()

	started := time.Date(2020, 3, 4, 5, 6, 7, 0, time.UTC)
	r := newReport(7, started, sweep.Replaced, sweep.Degraded, sweep.UnsupportedType)
	require.NoError(t, j.Record(r))

	got, err := j.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, taint.Label(7), got.Label)
	assert.True(t, started.Equal(got.Started))
	require.Len(t, got.Entries, 3)
	assert.Equal(t, sweep.UnsupportedType, got.Entries[2].Outcome)
	assert.Equal(t, 1, got.Count(sweep.Degraded))

	err = got.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "predicate is unsatisfiable")

	_, err = j.Get(uuid.New().String())
	assert.Equal(t, fault.ErrReportNotFound, err)
}

func TestListNewestFirst(t *testing.T) {
	j := open(t)
	defer j.Close()

	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := []string{}
	for i := 0; i < 5; i += 1 {
		r := newReport(taint.Label(i%2+1), base.Add(time.Duration(i)*time.Hour), sweep.Replaced)
		require.NoError(t, j.Record(r))
		ids = append(ids, r.ID)
	}

	reports, err := j.List(3)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, ids[4], reports[0].ID)
	assert.Equal(t, ids[3], reports[1].ID)
	assert.Equal(t, ids[2], reports[2].ID)

	all, err := j.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	odd, err := j.ByLabel(1)
	require.NoError(t, err)
	require.Len(t, odd, 3)
	assert.Equal(t, ids[0], odd[0].ID)
	assert.Equal(t, ids[2], odd[1].ID)
	assert.Equal(t, ids[4], odd[2].ID)

	none, err := j.ByLabel(99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReopen(t *testing.T) {
	j := open(t)

	r := newReport(3, time.Now().UTC(), sweep.Stale)
	require.NoError(t, j.Record(r))
	require.NoError(t, j.Close())

	assert.Equal(t, fault.ErrDatabaseIsNotSet, j.Record(r))
	_, err := j.Get(r.ID)
	assert.Equal(t, fault.ErrDatabaseIsNotSet, err)

	ro, err := journal.Open(fixtures.Path("journal.leveldb"), journal.ReadOnly)
	require.NoError(t, err)
	defer ro.Close()

	got, err := ro.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, sweep.Stale, got.Entries[0].Outcome)
}
