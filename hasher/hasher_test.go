// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hasher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/splice/hasher"
)

func TestText(t *testing.T) {
	items := []struct {
		s string
		h uint64
	}{
		{"", 0},
		{"A", 65},
		{"AB", 65*2 + 66},
		{"FGHI", 70*8 + 71*4 + 72*2 + 73},
		{"JKLM", 74*8 + 75*4 + 76*2 + 77},
	}

	for i, item := range items {
		assert.Equal(t, item.h, hasher.Text(item.s), "%d: text hash of %q", i, item.s)
		assert.Equal(t, item.h, hasher.Bytes([]byte(item.s)), "%d: bytes hash of %q", i, item.s)
	}
}

// different strings with the same fold value
func TestTextCollision(t *testing.T) {
	// moving one from a byte to the next byte as two keeps the sum
	assert.Equal(t, hasher.Text("FGHI"), hasher.Text("FGGK"))
	assert.Equal(t, hasher.Text("FGHI"), hasher.Text("EIHI"))
}

func TestInteger(t *testing.T) {
	assert.Equal(t, uint64(50), hasher.Integer(50))
	assert.Equal(t, uint64(0), hasher.Integer(0))
	assert.Equal(t, ^uint64(0), hasher.Integer(-1))
}

func TestBucket(t *testing.T) {
	assert.Equal(t, 0, hasher.Bucket(hasher.Integer(50), 10))
	assert.Equal(t, 1, hasher.Bucket(hasher.Text("FGHI"), 10))
	assert.Equal(t, 5, hasher.Bucket(^uint64(0), 10))
}
