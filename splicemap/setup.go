// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package splicemap

import (
	"sync"

	"github.com/bitmark-inc/splice/hashtable"
	"github.com/bitmark-inc/splice/scalar"
	"github.com/bitmark-inc/splice/tracked"
)

// Map - tagged map over a chained hash table
type Map struct {
	sync.Mutex // serialises compound operations, reads use the table lock
	table      *hashtable.Table
	index      tracked.Index
}

// New - create a map with the default number of buckets
//
// index receives every key and value the map creates, it may be nil
func New(index tracked.Index) *Map {
	return &Map{
		table: hashtable.New(),
		index: index,
	}
}

// NewWithBuckets - create a map with n buckets
func NewWithBuckets(index tracked.Index, n int) (*Map, error) {
	t, err := hashtable.NewWithBuckets(n)
	if nil != err {
		return nil, err
	}
	return &Map{
		table: t,
		index: index,
	}, nil
}

// Hash - the hash used for placement, see constraint.Enclosing
func (m *Map) Hash(v scalar.Value) uint64 {
	return v.Hash()
}

// Capacity - fixed bucket count
func (m *Map) Capacity() int {
	return m.table.Capacity()
}

// Size - number of entries
func (m *Map) Size() int {
	return m.table.Size()
}

// BucketOf - chain a key is placed in
func (m *Map) BucketOf(key interface{}) (int, error) {
	search, err := searchKeyOf(key)
	if nil != err {
		return 0, err
	}
	return m.table.BucketOf(search), nil
}
