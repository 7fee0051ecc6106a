// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package splicemap

import (
	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/scalar"
	"github.com/bitmark-inc/splice/taint"
	"github.com/bitmark-inc/splice/tracked"
)

// SubstituteKey - replace a stored key by a synthesized one in the
// same chain position, see tracked.Container
//
// returns false without change if the key was deleted or modified
// after generation was read.  The replacement must hash the same as
// the old key, fault.ErrHashMismatch otherwise.
func (m *Map) SubstituteKey(old *tracked.Value, generation uint64, replacement scalar.Value) (bool, error) {
	if !replacement.Kind().Synthesizable() {
		return false, fault.UnsupportedKindError{Kind: replacement.RawKind()}
	}

	m.Lock()
	defer m.Unlock()

	if !old.Current(generation) {
		return false, nil
	}
	storedKey, value, found := m.table.Entry(old)
	if !found || storedKey != old {
		return false, nil
	}

	key := tracked.NewMember(m.index, m, tracked.AsKey, replacement, synthesizedTag(old), nil)
	ok, err := m.table.SubstituteKey(old, key)
	if nil != err || !ok {
		key.Retire(false)
		return false, err
	}
	old.Retire(true)
	if v, ok := value.(*tracked.Value); ok {
		v.Rekey(key)
	}
	return true, nil
}

// ReplaceValue - overwrite a stored value with a synthesized one, see
// tracked.Container
//
// returns false without change if the value was removed or modified
// after generation was read
func (m *Map) ReplaceValue(old *tracked.Value, generation uint64, replacement scalar.Value) (bool, error) {
	if !replacement.Kind().Synthesizable() {
		return false, fault.UnsupportedKindError{Kind: replacement.RawKind()}
	}

	m.Lock()
	defer m.Unlock()

	if !old.Current(generation) {
		return false, nil
	}
	owner := old.State().Owner
	if nil == owner {
		return false, nil
	}
	_, stored, found := m.table.Entry(owner)
	if !found || stored != old {
		return false, nil
	}

	value := tracked.NewMember(m.index, m, tracked.AsValue, replacement, synthesizedTag(old), owner)
	m.table.ReplaceValue(owner, value)
	old.Retire(true)
	return true, nil
}

// a replacement inherits the constraints and trust of the value it
// replaces, it no longer carries the label
func synthesizedTag(old *tracked.Value) taint.Tag {
	tag := old.Tag()
	tag.Label = taint.Empty
	tag.Synthesized = true
	return tag
}
