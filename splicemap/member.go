// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package splicemap

import (
	"github.com/bitmark-inc/splice/constraint"
	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/scalar"
	"github.com/bitmark-inc/splice/taint"
	"github.com/bitmark-inc/splice/tracked"
)

// a validated input to Set
type source struct {
	concrete scalar.Value
	tag      taint.Tag
	from     *tracked.Value
}

func sourceOf(x interface{}, label taint.Label) (source, error) {
	if v, ok := x.(*tracked.Value); ok {
		s := v.State()
		if !s.Concrete.Kind().Synthesizable() {
			return source{}, fault.UnsupportedKindError{Kind: s.Concrete.RawKind()}
		}
		return source{
			concrete: s.Concrete,
			tag:      s.Tag,
			from:     v,
		}, nil
	}

	c, err := scalar.Of(x)
	if nil != err {
		return source{}, err
	}
	return source{
		concrete: c,
		tag:      taint.NewTag(label, true),
	}, nil
}

// internal: lock must be held
func (m *Map) member(s source, role tracked.Role, owner *tracked.Value, closures ...constraint.Closure) *tracked.Value {
	if nil != s.from && s.from.Adopt(m, role, owner, closures...) {
		return s.from
	}
	tag := s.tag.Copy()
	tag.Synthesized = false
	tag.Constraints = closures
	return tracked.NewMember(m.index, m, role, s.concrete, tag, owner)
}

// take a dropped member out of the index unless it was kept
func retire(item interface{}, kept *tracked.Value, synthesized bool) {
	v, ok := item.(*tracked.Value)
	if !ok || v == kept {
		return
	}
	v.Retire(synthesized)
}
