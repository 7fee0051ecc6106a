// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashtable_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/hasher"
	"github.com/bitmark-inc/splice/hashtable"
	"github.com/bitmark-inc/splice/scalar"
)

func text(s string) scalar.Value { return scalar.NewText(s) }
func integer(n int64) scalar.Value { return scalar.NewInteger(n) }

// integer key 50 lands in chain 0 of a ten bucket table
func TestInsertLookupInteger(t *testing.T) {
	table := hashtable.New()
	assert.Equal(t, hashtable.DefaultBuckets, table.Capacity())

	table.Insert(integer(50), 12345)

	value, err := table.Lookup(integer(50))
	require.NoError(t, err)
	assert.Equal(t, 12345, value)

	b := hasher.Bucket(hasher.Integer(50), 10)
	assert.Equal(t, b, table.BucketOf(integer(50)))
	chain := table.Chain(b)
	require.Len(t, chain, 1)
	assert.True(t, chain[0].Equal(integer(50)))
}

func TestLookupMissing(t *testing.T) {
	table := hashtable.New()
	table.Insert(text("a"), 1)

	_, err := table.Lookup(text("b"))
	assert.Equal(t, fault.ErrKeyNotFound, err)
	assert.True(t, fault.IsErrNotFound(err))
	assert.False(t, table.Contains(text("b")))
	assert.True(t, table.Contains(text("a")))
}

func TestInsertOverwrites(t *testing.T) {
	table := hashtable.New()
	original := text("key")

	assert.True(t, table.Insert(original, "one"))
	assert.False(t, table.Insert(text("key"), "two"))
	assert.Equal(t, 1, table.Size())

	key, value, found := table.Entry(text("key"))
	require.True(t, found)
	assert.Equal(t, "two", value)
	assert.True(t, key.Equal(original))
}

func TestInvalidBuckets(t *testing.T) {
	_, err := hashtable.NewWithBuckets(0)
	assert.Equal(t, fault.ErrInvalidBucketCount, err)

	table, err := hashtable.NewWithBuckets(3)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Capacity())
}

// deleting an absent key is a no-op, twice
func TestDeleteIdempotent(t *testing.T) {
	table := hashtable.New()
	table.Insert(text("present"), 1)

	assert.False(t, table.Delete(text("absent")))
	before := table.Keys()
	assert.False(t, table.Delete(text("absent")))
	assert.Equal(t, before, table.Keys())
	assert.Equal(t, 1, table.Size())

	assert.True(t, table.Delete(text("present")))
	assert.False(t, table.Delete(text("present")))
	assert.Equal(t, 0, table.Size())
}

func TestSubstituteKey(t *testing.T) {
	table := hashtable.New()
	table.Insert(text("FGHI"), 9876)
	table.Insert(text("JKLM"), 34567)
	b := table.BucketOf(text("FGHI"))

	ok, err := table.SubstituteKey(text("FGHI"), text("FGGK"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = table.Lookup(text("FGHI"))
	assert.Equal(t, fault.ErrKeyNotFound, err)

	value, err := table.Lookup(text("FGGK"))
	require.NoError(t, err)
	assert.Equal(t, 9876, value)
	assert.Equal(t, b, table.BucketOf(text("FGGK")))
	assert.Equal(t, 2, table.Size())
}

func TestSubstituteKeySame(t *testing.T) {
	table := hashtable.New()
	table.Insert(integer(50), 1)

	ok, err := table.SubstituteKey(integer(50), integer(50))
	require.NoError(t, err)
	assert.True(t, ok)

	value, err := table.Lookup(integer(50))
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}

func TestSubstituteKeyFailures(t *testing.T) {
	table := hashtable.New()
	table.Insert(text("FGHI"), 1)
	table.Insert(text("EIHI"), 2)

	ok, err := table.SubstituteKey(text("FGHI"), text("ZZZZ"))
	assert.Equal(t, fault.ErrHashMismatch, err)
	assert.False(t, ok)

	ok, err = table.SubstituteKey(text("FGGK"), text("EIHI"))
	assert.NoError(t, err)
	assert.False(t, ok, "absent key must not be substituted")

	ok, err = table.SubstituteKey(text("FGHI"), text("EIHI"))
	assert.Equal(t, fault.ErrKeyExists, err)
	assert.False(t, ok)

	value, err := table.Lookup(text("FGHI"))
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}

func TestReplaceValue(t *testing.T) {
	table := hashtable.New()
	table.Insert(text("k"), 1)

	assert.True(t, table.ReplaceValue(text("k"), 2))
	assert.False(t, table.ReplaceValue(text("absent"), 3))
	assert.Equal(t, 1, table.Size())

	value, _ := table.Lookup(text("k"))
	assert.Equal(t, 2, value)
}

func TestIterator(t *testing.T) {
	table := hashtable.New()
	expected := map[string]bool{}
	for i := 0; i < 25; i += 1 {
		s := fmt.Sprintf("key-%d", i)
		table.Insert(text(s), i)
		expected[s] = true
	}

	it := table.Iterate()
	n := 0
	for key, ok := it.Next(); ok; key, ok = it.Next() {
		s := key.(scalar.Value).Str()
		assert.True(t, expected[s], "unexpected key: %q", s)
		delete(expected, s)
		n += 1
	}
	assert.Equal(t, 25, n)
	assert.Empty(t, expected)
	assert.Len(t, table.Keys(), 25)
}

// random operations keep every key in its chain and no chain has
// duplicates
func TestPlacementInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	table, err := hashtable.NewWithBuckets(7)
	require.NoError(t, err)

	alphabet := "ABCDEFGH"
	randomKey := func() scalar.Value {
		if 0 == r.Intn(2) {
			return integer(int64(r.Intn(40) - 20))
		}
		b := make([]byte, 1+r.Intn(3))
		for i := range b {
			b[i] = alphabet[r.Intn(len(alphabet))]
		}
		return text(string(b))
	}

	for i := 0; i < 2000; i += 1 {
		k := randomKey()
		switch r.Intn(4) {
		case 0, 1:
			table.Insert(k, i)
		case 2:
			table.Delete(k)
		case 3:
			// shift one unit down a position and two units up the next
			s := k.Str()
			if scalar.Text == k.Kind() && len(s) >= 2 && s[1] < 250 {
				b := []byte(s)
				b[0] -= 1
				b[1] += 2
				_, err := table.SubstituteKey(k, text(string(b)))
				if nil != err {
					assert.Equal(t, fault.ErrKeyExists, err)
				}
			}
		}
	}

	total := 0
	for b := 0; b < table.Capacity(); b += 1 {
		chain := table.Chain(b)
		total += len(chain)
		for i, key := range chain {
			assert.Equal(t, b, table.BucketOf(key), "key %v in wrong chain", key)
			assert.True(t, table.Contains(key))
			for _, other := range chain[i+1:] {
				assert.False(t, key.Equal(other), "duplicate key %v", key)
			}
		}
	}
	assert.Equal(t, table.Size(), total)
}
