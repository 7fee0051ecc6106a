// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package splicemap

import (
	"github.com/bitmark-inc/splice/constraint"
	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/hashtable"
	"github.com/bitmark-inc/splice/scalar"
	"github.com/bitmark-inc/splice/taint"
	"github.com/bitmark-inc/splice/tracked"
)

// Set - store a value under a key, neither is labelled
func (m *Map) Set(key interface{}, value interface{}) error {
	return m.SetWithLabel(key, value, taint.Empty)
}

// SetWithLabel - store a value under a key with both labelled
//
// key and value may be plain integers or text, or *tracked.Value
// whose label and trust are kept; a detached tracked value is adopted
// and others are copied.  label only applies to plain inputs.  Any
// other kind fails with fault.UnsupportedKindError.  An existing equal
// key keeps its identity and only the value is replaced, a detached
// tracked key given for it is retired.
func (m *Map) SetWithLabel(key interface{}, value interface{}, label taint.Label) error {
	k, err := sourceOf(key, label)
	if nil != err {
		return err
	}
	v, err := sourceOf(value, label)
	if nil != err {
		return err
	}

	m.Lock()
	defer m.Unlock()

	storedKey, oldValue, found := m.table.Entry(k.concrete)
	if found {
		owner := storedKey.(*tracked.Value)
		member := m.member(v, tracked.AsValue, owner)
		m.table.ReplaceValue(owner, member)
		retire(oldValue, member, false)
		if nil != k.from && tracked.Detached == k.from.State().Role {
			k.from.Retire(false)
		}
		return nil
	}

	keyMember := m.member(k, tracked.AsKey, nil, constraint.EqualHash(k.concrete))
	valueMember := m.member(v, tracked.AsValue, keyMember)
	m.table.Insert(keyMember, valueMember)
	return nil
}

// Get - the plain content stored under key
//
// fails with fault.ErrKeyNotFound if absent
func (m *Map) Get(key interface{}) (interface{}, error) {
	v, err := m.Lookup(key)
	if nil != err {
		return nil, err
	}
	return v.Scalar().Interface(), nil
}

// Lookup - the tracked value stored under key
func (m *Map) Lookup(key interface{}) (*tracked.Value, error) {
	_, v, err := m.entry(key)
	return v, err
}

// KeyOf - the tracked key stored equal to key
func (m *Map) KeyOf(key interface{}) (*tracked.Value, error) {
	k, _, err := m.entry(key)
	return k, err
}

// KeyTag - tag of the stored key
func (m *Map) KeyTag(key interface{}) (taint.Tag, error) {
	k, _, err := m.entry(key)
	if nil != err {
		return taint.Tag{}, err
	}
	return k.Tag(), nil
}

// ValueTag - tag of the stored value
func (m *Map) ValueTag(key interface{}) (taint.Tag, error) {
	_, v, err := m.entry(key)
	if nil != err {
		return taint.Tag{}, err
	}
	return v.Tag(), nil
}

// Contains - true if an equal key is stored
func (m *Map) Contains(key interface{}) bool {
	search, err := searchKeyOf(key)
	if nil != err {
		return false
	}
	return m.table.Contains(search)
}

// Delete - remove a key and its value, absent keys are ignored
//
// returns true if an entry was removed
func (m *Map) Delete(key interface{}) bool {
	search, err := searchKeyOf(key)
	if nil != err {
		return false
	}

	m.Lock()
	defer m.Unlock()

	storedKey, value, found := m.table.Entry(search)
	if !found {
		return false
	}
	m.table.Delete(storedKey)
	retire(storedKey, nil, false)
	retire(value, nil, false)
	return true
}

// Keys - the content of every stored key, chain by chain
func (m *Map) Keys() []scalar.Value {
	items := m.table.Keys()
	keys := make([]scalar.Value, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.(*tracked.Value).Scalar())
	}
	return keys
}

// Each - call f for every entry until it returns false
//
// entries added or removed during the walk may or may not be seen
func (m *Map) Each(f func(key *tracked.Value, value *tracked.Value) bool) {
	it := m.table.Iterate()
	for {
		item, ok := it.Next()
		if !ok {
			return
		}
		_, value, found := m.table.Entry(item)
		if !found {
			continue
		}
		if !f(item.(*tracked.Value), value.(*tracked.Value)) {
			return
		}
	}
}

func (m *Map) entry(key interface{}) (*tracked.Value, *tracked.Value, error) {
	search, err := searchKeyOf(key)
	if nil != err {
		return nil, nil, err
	}
	k, v, found := m.table.Entry(search)
	if !found {
		return nil, nil, fault.ErrKeyNotFound
	}
	return k.(*tracked.Value), v.(*tracked.Value), nil
}

// the table searches with anything that is an Item, plain Go values
// are converted first
func searchKeyOf(key interface{}) (hashtable.Item, error) {
	switch k := key.(type) {
	case *tracked.Value:
		return k, nil
	case scalar.Value:
		return k, nil
	}
	return scalar.Of(key)
}
