// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package limitedset - remember the most recent n strings
//
// used to suppress repeated file events for the same spool entry
package limitedset

import (
	"container/ring"
	"sync"
)

// LimitedSet - fixed size set, the oldest item is evicted first
type LimitedSet struct {
	sync.Mutex
	ring *ring.Ring
	hash map[string]*ring.Ring
}

// New - a set that holds up to n items
func New(n int) *LimitedSet {
	if n < 1 {
		n = 1
	}
	return &LimitedSet{
		ring: ring.New(n),
		hash: make(map[string]*ring.Ring),
	}
}

// Add - insert an item, returns false if it was already present
//
// a present item is refreshed and becomes the newest
func (ls *LimitedSet) Add(item string) bool {
	ls.Lock()
	defer ls.Unlock()

	if r, ok := ls.hash[item]; ok {
		switch r {
		case ls.ring.Prev():
		case ls.ring:
			ls.ring = ls.ring.Next()
		default:
			r = r.Prev().Unlink(1)
			ls.ring.Prev().Link(r)
		}
		return false
	}
	if oldItem, ok := ls.ring.Value.(string); ok {
		delete(ls.hash, oldItem)
	}
	ls.ring.Value = item
	ls.hash[item] = ls.ring
	ls.ring = ls.ring.Next()
	return true
}

// Remove - forget an item
func (ls *LimitedSet) Remove(item string) {
	ls.Lock()
	defer ls.Unlock()

	r, ok := ls.hash[item]
	if !ok {
		return
	}
	delete(ls.hash, item)
	r.Value = nil
}

// Exists - true if the item is in the set
func (ls *LimitedSet) Exists(item string) bool {
	ls.Lock()
	defer ls.Unlock()
	_, ok := ls.hash[item]
	return ok
}

// Len - number of items held
func (ls *LimitedSet) Len() int {
	ls.Lock()
	defer ls.Unlock()
	return len(ls.hash)
}
