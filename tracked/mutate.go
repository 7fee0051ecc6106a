// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracked

import (
	"github.com/bitmark-inc/splice/constraint"
	"github.com/bitmark-inc/splice/scalar"
	"github.com/bitmark-inc/splice/taint"
)

// SetLabel - change the label and move the value in the index
func (v *Value) SetLabel(label taint.Label) {
	v.Lock()
	changed := v.tag.Label != label
	v.tag.Label = label
	v.generation += 1
	index := v.index
	v.Unlock()

	if changed && nil != index {
		index.Relabel(v)
	}
}

// Degrade - record that a redaction could not replace the content:
// no longer trusted, synthesized and not labelled, the content is
// left as it is
//
// returns false if the value changed after generation was read
func (v *Value) Degrade(generation uint64) bool {
	v.Lock()
	if !v.live || v.generation != generation {
		v.Unlock()
		return false
	}
	v.tag.Trusted = false
	v.tag.Synthesized = true
	relabel := !v.tag.Label.IsEmpty()
	v.tag.Label = taint.Empty
	v.generation += 1
	index := v.index
	v.Unlock()

	if relabel && nil != index {
		index.Relabel(v)
	}
	return true
}

// Overwrite - replace the content of a detached value in place
//
// the value is marked synthesized and its label cleared; returns
// false if the value changed after generation was read
func (v *Value) Overwrite(generation uint64, replacement scalar.Value) bool {
	v.Lock()
	if !v.live || v.generation != generation || Detached != v.role {
		v.Unlock()
		return false
	}
	v.concrete = replacement
	v.tag.Synthesized = true
	relabel := !v.tag.Label.IsEmpty()
	v.tag.Label = taint.Empty
	v.generation += 1
	index := v.index
	v.Unlock()

	if relabel && nil != index {
		index.Relabel(v)
	}
	return true
}

// Current - true if the value is live and unchanged since generation
func (v *Value) Current(generation uint64) bool {
	v.Lock()
	defer v.Unlock()
	return v.live && v.generation == generation
}

// Retire - a container has dropped the value, mark it synthesized if
// it was replaced and take it out of the index
func (v *Value) Retire(synthesized bool) {
	v.Lock()
	if !v.live {
		v.Unlock()
		return
	}
	v.live = false
	if synthesized {
		v.tag.Synthesized = true
	}
	v.generation += 1
	index := v.index
	v.Unlock()

	if nil != index {
		index.Deregister(v)
	}
}

// Adopt - make a detached value a member of a container
//
// returns false if the value is not detached
func (v *Value) Adopt(container Container, role Role, owner *Value, closures ...constraint.Closure) bool {
	v.Lock()
	defer v.Unlock()
	if !v.live || Detached != v.role {
		return false
	}
	v.role = role
	v.container = container
	v.owner = owner
	v.tag.Constraints = append(v.tag.Constraints, closures...)
	v.generation += 1
	return true
}

// Rekey - re-point a stored value at the synthesized key it now lives
// under and mark it synthesized, the generation is unchanged
func (v *Value) Rekey(owner *Value) {
	v.Lock()
	defer v.Unlock()
	v.owner = owner
	v.tag.Synthesized = true
}
