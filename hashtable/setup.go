// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashtable

import (
	"sync"

	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/hasher"
)

// DefaultBuckets - bucket count used by New
const DefaultBuckets = 10

// Item - the interface a key must support
//
// Equal receives another stored key or a search key, and any two keys that
// are Equal must have the same Hash
type Item interface {
	Hash() uint64
	Equal(interface{}) bool
}

// one key/value pair in a chain
type entry struct {
	key   Item
	value interface{}
}

// Table - type to hold the chains of a table
type Table struct {
	sync.RWMutex
	buckets [][]entry
	count   int
}

// New - create an empty table with the default number of buckets
func New() *Table {
	t, _ := NewWithBuckets(DefaultBuckets)
	return t
}

// NewWithBuckets - create an empty table with n buckets
func NewWithBuckets(n int) (*Table, error) {
	if n <= 0 {
		return nil, fault.ErrInvalidBucketCount
	}
	return &Table{
		buckets: make([][]entry, n),
		count:   0,
	}, nil
}

// Capacity - the fixed number of buckets
func (t *Table) Capacity() int {
	return len(t.buckets)
}

// Size - number of entries currently in the table
func (t *Table) Size() int {
	t.RLock()
	defer t.RUnlock()
	return t.count
}

// BucketOf - the chain index a key belongs to
func (t *Table) BucketOf(key Item) int {
	return hasher.Bucket(key.Hash(), len(t.buckets))
}

// internal: position of key in its chain or -1, lock must be held
func (t *Table) find(key Item) (int, int) {
	b := t.BucketOf(key)
	for i, e := range t.buckets[b] {
		if e.key.Equal(key) {
			return b, i
		}
	}
	return b, -1
}
