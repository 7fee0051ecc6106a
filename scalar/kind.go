// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scalar

// Kind - the domain of a value
type Kind int

// the kinds; Unsupported must stay zero so an empty Value is not
// mistaken for a synthesizable one
const (
	Unsupported Kind = iota
	Integer
	Text
)

// String - kind name
func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Text:
		return "text"
	default:
		return "unsupported"
	}
}

// Synthesizable - true for the two supported domains
func (k Kind) Synthesizable() bool {
	return Integer == k || Text == k
}
