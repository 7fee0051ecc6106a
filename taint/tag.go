// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package taint

import (
	"github.com/bitmark-inc/splice/constraint"
)

// Tag - the annotation attached to one tracked value
//
// Trusted becomes false when a redaction could not be proven sound
// and Synthesized becomes true once a redaction has touched the value
type Tag struct {
	Label       Label
	Trusted     bool
	Synthesized bool
	Constraints []constraint.Closure
}

// NewTag - a fresh tag, never synthesized
func NewTag(label Label, trusted bool, closures ...constraint.Closure) Tag {
	return Tag{
		Label:       label,
		Trusted:     trusted,
		Synthesized: false,
		Constraints: closures,
	}
}

// Copy - a tag with its own constraint slice
func (t Tag) Copy() Tag {
	c := t
	if nil != t.Constraints {
		c.Constraints = make([]constraint.Closure, len(t.Constraints))
		copy(c.Constraints, t.Constraints)
	}
	return c
}

// Pending - still carries the label and has not been redacted
func (t Tag) Pending(label Label) bool {
	return label == t.Label && t.Trusted && !t.Synthesized
}
