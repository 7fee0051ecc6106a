// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package taint

import (
	"strconv"
	"strings"

	"github.com/bitmark-inc/splice/fault"
)

// Label - opaque taint identifier
type Label uint64

// Empty - the label of non-sensitive data
const Empty Label = 0

// IsEmpty - true for the not sensitive label
func (l Label) IsEmpty() bool {
	return Empty == l
}

// String - decimal form
func (l Label) String() string {
	return strconv.FormatUint(uint64(l), 10)
}

// ParseLabel - read a decimal label, surrounding space is ignored
func ParseLabel(s string) (Label, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if nil != err {
		return Empty, fault.ErrInvalidLabel
	}
	return Label(n), nil
}
