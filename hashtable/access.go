// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashtable

import (
	"github.com/bitmark-inc/splice/fault"
)

// Insert - add a key/value pair, or overwrite the value of an equal
// key keeping the stored key
//
// returns true if a new entry was added
func (t *Table) Insert(key Item, value interface{}) bool {
	t.Lock()
	defer t.Unlock()

	b, i := t.find(key)
	if i >= 0 {
		t.buckets[b][i].value = value
		return false
	}
	t.buckets[b] = append(t.buckets[b], entry{key: key, value: value})
	t.count += 1
	return true
}

// Lookup - value stored for a key
//
// fails with fault.ErrKeyNotFound if the key is absent
func (t *Table) Lookup(key Item) (interface{}, error) {
	_, value, found := t.Entry(key)
	if !found {
		return nil, fault.ErrKeyNotFound
	}
	return value, nil
}

// Entry - the stored key and value that are equal to key
func (t *Table) Entry(key Item) (Item, interface{}, bool) {
	t.RLock()
	defer t.RUnlock()

	b, i := t.find(key)
	if i < 0 {
		return nil, nil, false
	}
	e := t.buckets[b][i]
	return e.key, e.value, true
}

// Contains - true if an equal key is stored
func (t *Table) Contains(key Item) bool {
	t.RLock()
	defer t.RUnlock()

	_, i := t.find(key)
	return i >= 0
}

// Delete - remove the entry for a key, absent keys are ignored
//
// returns true if an entry was removed
func (t *Table) Delete(key Item) bool {
	t.Lock()
	defer t.Unlock()

	b, i := t.find(key)
	if i < 0 {
		return false
	}
	chain := t.buckets[b]
	copy(chain[i:], chain[i+1:])
	chain[len(chain)-1] = entry{}
	t.buckets[b] = chain[:len(chain)-1]
	t.count -= 1
	return true
}

// ReplaceValue - overwrite the value of an existing key, never adds
// an entry
//
// returns false if the key is absent
func (t *Table) ReplaceValue(key Item, value interface{}) bool {
	t.Lock()
	defer t.Unlock()

	b, i := t.find(key)
	if i < 0 {
		return false
	}
	t.buckets[b][i].value = value
	return true
}

// SubstituteKey - replace a stored key with a new key in the same
// position of the same chain, the value is kept
//
// the new key must have exactly the same hash as the old one, this
// is checked and fails with fault.ErrHashMismatch.  A new key that is
// equal to a different stored key fails with fault.ErrKeyExists.
// returns false if the old key is absent
func (t *Table) SubstituteKey(oldKey Item, newKey Item) (bool, error) {
	if oldKey.Hash() != newKey.Hash() {
		return false, fault.ErrHashMismatch
	}

	t.Lock()
	defer t.Unlock()

	b, i := t.find(oldKey)
	if i < 0 {
		return false, nil
	}
	for j, e := range t.buckets[b] {
		if j != i && e.key.Equal(newKey) {
			return false, fault.ErrKeyExists
		}
	}
	t.buckets[b][i].key = newKey
	return true, nil
}
