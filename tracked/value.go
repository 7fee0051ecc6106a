// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracked

import (
	"fmt"
	"sync"

	"github.com/bitmark-inc/splice/constraint"
	"github.com/bitmark-inc/splice/counter"
	"github.com/bitmark-inc/splice/scalar"
	"github.com/bitmark-inc/splice/taint"
)

// Role - where a tracked value lives
type Role int

// roles
const (
	Detached Role = iota
	AsKey
	AsValue
)

// String - role name
func (r Role) String() string {
	switch r {
	case AsKey:
		return "key"
	case AsValue:
		return "value"
	default:
		return "detached"
	}
}

// Index - the registry side of a tracked value
type Index interface {
	Register(*Value)
	Deregister(*Value)
	Relabel(*Value)
}

// Container - the structure holding a key or value
//
// generation is the value's generation when the caller read it, a
// container must refuse to act if the value changed since
type Container interface {
	constraint.Enclosing
	SubstituteKey(old *Value, generation uint64, replacement scalar.Value) (bool, error)
	ReplaceValue(old *Value, generation uint64, replacement scalar.Value) (bool, error)
}

// identities for all tracked values in the process
var identities counter.Sequence

// Value - a scalar with a taint tag
type Value struct {
	sync.Mutex
	id         uint64
	role       Role
	concrete   scalar.Value
	tag        taint.Tag
	generation uint64
	live       bool
	container  Container
	owner      *Value
	index      Index
}

// State - a consistent copy of a value's fields
type State struct {
	ID         uint64
	Role       Role
	Concrete   scalar.Value
	Tag        taint.Tag
	Generation uint64
	Live       bool
	Container  Container
	Owner      *Value
}

// New - create a detached tracked value and register it
//
// any Go value is accepted, unsupported kinds are kept so that a
// redaction can report them; index may be nil
func New(index Index, raw interface{}, label taint.Label, trusted bool) *Value {
	v := &Value{
		id:       identities.Next(),
		role:     Detached,
		concrete: scalar.Wrap(raw),
		tag:      taint.NewTag(label, trusted),
		live:     true,
		index:    index,
	}
	if nil != index {
		index.Register(v)
	}
	return v
}

// NewMember - create a registered key or value of a container
func NewMember(index Index, container Container, role Role, concrete scalar.Value, tag taint.Tag, owner *Value) *Value {
	v := &Value{
		id:        identities.Next(),
		role:      role,
		concrete:  concrete,
		tag:       tag,
		live:      true,
		container: container,
		owner:     owner,
		index:     index,
	}
	if nil != index {
		index.Register(v)
	}
	return v
}

// ID - process unique identity
func (v *Value) ID() uint64 {
	return v.id
}

// Scalar - current content
func (v *Value) Scalar() scalar.Value {
	v.Lock()
	defer v.Unlock()
	return v.concrete
}

// Label - current label
func (v *Value) Label() taint.Label {
	v.Lock()
	defer v.Unlock()
	return v.tag.Label
}

// Tag - copy of the current tag
func (v *Value) Tag() taint.Tag {
	v.Lock()
	defer v.Unlock()
	return v.tag.Copy()
}

// Live - false once removed from its container
func (v *Value) Live() bool {
	v.Lock()
	defer v.Unlock()
	return v.live
}

// State - snapshot of all fields
func (v *Value) State() State {
	v.Lock()
	defer v.Unlock()
	return State{
		ID:         v.id,
		Role:       v.role,
		Concrete:   v.concrete,
		Tag:        v.tag.Copy(),
		Generation: v.generation,
		Live:       v.live,
		Container:  v.container,
		Owner:      v.owner,
	}
}

// Hash - table hash of the content, see hashtable.Item
func (v *Value) Hash() uint64 {
	return v.Scalar().Hash()
}

// Equal - compare content with a scalar or another holder, see
// hashtable.Item
func (v *Value) Equal(x interface{}) bool {
	return v.Scalar().Equal(x)
}

// String - for logging
func (v *Value) String() string {
	s := v.State()
	return fmt.Sprintf("%s#%d(%s label: %s)", s.Role, s.ID, s.Concrete, s.Tag.Label)
}
