// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashtable

// Keys - all keys, chain by chain
func (t *Table) Keys() []Item {
	t.RLock()
	defer t.RUnlock()

	keys := make([]Item, 0, t.count)
	for _, chain := range t.buckets {
		for _, e := range chain {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Chain - the keys currently stored in chain b
func (t *Table) Chain(b int) []Item {
	t.RLock()
	defer t.RUnlock()

	if b < 0 || b >= len(t.buckets) {
		return nil
	}
	keys := make([]Item, len(t.buckets[b]))
	for i, e := range t.buckets[b] {
		keys[i] = e.key
	}
	return keys
}

// Iterator - lazy walk over the keys of a table
type Iterator struct {
	table  *Table
	bucket int
	index  int
}

// Iterate - start a walk at the first chain
func (t *Table) Iterate() *Iterator {
	return &Iterator{
		table: t,
	}
}

// Next - the next key, false when there are no more keys
//
// mutation between calls may cause keys to be skipped or repeated
func (it *Iterator) Next() (Item, bool) {
	t := it.table
	t.RLock()
	defer t.RUnlock()

	for it.bucket < len(t.buckets) {
		chain := t.buckets[it.bucket]
		if it.index < len(chain) {
			key := chain[it.index].key
			it.index += 1
			return key, true
		}
		it.bucket += 1
		it.index = 0
	}
	return nil, false
}
