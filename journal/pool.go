// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/splice/fault"
)

// one prefixed table, callers hold the journal lock
type poolHandle struct {
	prefix  byte
	journal *Journal
}

// a binary data item
type element struct {
	Key   []byte
	Value []byte
}

func newPool(j *Journal, prefix byte) *poolHandle {
	return &poolHandle{
		prefix:  prefix,
		journal: j,
	}
}

// prepend the prefix onto the key
func (p *poolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// add a put to a batch
func (p *poolHandle) put(batch *leveldb.Batch, key []byte, value []byte) {
	batch.Put(p.prefixKey(key), value)
}

// read a value for a key, nil if not found
func (p *poolHandle) get(key []byte) ([]byte, error) {
	db := p.journal.database
	if nil == db {
		return nil, fault.ErrDatabaseIsNotSet
	}
	value, err := db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// the elements whose keys start with prefix ++ start, newest first
// when reverse is set, at most limit elements (all if limit <= 0)
//
// keys are returned without the pool prefix, values are copies
func (p *poolHandle) scan(start []byte, reverse bool, limit int) ([]element, error) {
	db := p.journal.database
	if nil == db {
		return nil, fault.ErrDatabaseIsNotSet
	}

	r := ldb_util.BytesPrefix(p.prefixKey(start))
	iter := db.NewIterator(r, nil)
	defer iter.Release()

	elements := []element{}
	next := iter.Next
	ok := iter.First()
	if reverse {
		next = iter.Prev
		ok = iter.Last()
	}
	for ; ok; ok = next() {
		if limit > 0 && len(elements) >= limit {
			break
		}

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		elements = append(elements, element{Key: dataKey, Value: dataValue})
	}
	return elements, iter.Error()
}
