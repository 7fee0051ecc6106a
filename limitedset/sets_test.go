// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package limitedset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/splice/limitedset"
)

// add a list of items and check that exactly the expected ones remain
func check(t *testing.T, size int, items []string, expected []string) {
	s := limitedset.New(size)
	for _, item := range items {
		s.Add(item)
	}

	want := make(map[string]struct{})
	for _, item := range expected {
		want[item] = struct{}{}
		assert.True(t, s.Exists(item), "missing: %q", item)
	}
	for _, item := range items {
		if _, ok := want[item]; ok {
			continue
		}
		assert.False(t, s.Exists(item), "present: %q", item)
	}
	assert.Equal(t, len(expected), s.Len())
}

func TestEviction(t *testing.T) {
	items := []string{
		"req-0001", "req-0002", "req-0003", "req-0003", "req-0003",
		"req-0004", "req-0005", "req-0006", "req-0007",
	}
	check(t, 4, items, []string{"req-0004", "req-0005", "req-0006", "req-0007"})
}

func TestRefreshKeepsRecentItem(t *testing.T) {
	items := []string{
		"a.req", "b.req", "c.req",
		"a.req", // oldest slot becomes newest
		"d.req",
		"a.req",
		"e.req",
	}
	check(t, 3, items, []string{"d.req", "a.req", "e.req"})
}

func TestAddReportsDuplicates(t *testing.T) {
	s := limitedset.New(2)
	assert.True(t, s.Add("x"))
	assert.False(t, s.Add("x"))
	assert.True(t, s.Add("y"))
	assert.True(t, s.Add("z"))
	assert.True(t, s.Add("x"), "evicted items are new again")
}

func TestRemove(t *testing.T) {
	s := limitedset.New(3)
	s.Add("x")
	s.Add("y")
	s.Remove("x")
	s.Remove("absent")
	assert.False(t, s.Exists("x"))
	assert.True(t, s.Exists("y"))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Add("x"))
}
