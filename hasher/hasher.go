// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hasher

// Bytes - fold a byte sequence left to right
func Bytes(data []byte) uint64 {
	h := uint64(0)
	for _, b := range data {
		h = h*2 + uint64(b)
	}
	return h
}

// Text - hash of the byte encoding of a string
func Text(s string) uint64 {
	h := uint64(0)
	for i := 0; i < len(s); i += 1 {
		h = h*2 + uint64(s[i])
	}
	return h
}

// Integer - hash of a bounded integer
func Integer(n int64) uint64 {
	return uint64(n)
}

// Bucket - chain index for a hash in a table of n buckets
func Bucket(h uint64, n int) int {
	return int(h % uint64(n))
}
