// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - lock free sequence numbers for identities and
// generations
package counter

import (
	"sync/atomic"
)

// Sequence - a 64 bit monotonic counter, the zero value is ready
// and its first Next is 1
type Sequence uint64

// Next - advance and return the new value
func (s *Sequence) Next() uint64 {
	return atomic.AddUint64((*uint64)(s), 1)
}

// Current - the last value returned by Next, zero if never advanced
func (s *Sequence) Current() uint64 {
	return atomic.LoadUint64((*uint64)(s))
}

// Changed - true if Next has been called since the value mark was read
func (s *Sequence) Changed(mark uint64) bool {
	return s.Current() != mark
}
