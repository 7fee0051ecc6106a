// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/splice/registry"
	"github.com/bitmark-inc/splice/splicemap"
	"github.com/bitmark-inc/splice/taint"
	"github.com/bitmark-inc/splice/tracked"
)

// Lua has only one number type, integral numbers become int64
func recordItem(x interface{}) interface{} {
	f, ok := x.(float64)
	if !ok {
		return x
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return x
	}
	return int64(f)
}

// fill the store from the configuration records
func seedStore(log *logger.L, index *registry.Registry, store *splicemap.Map, records []RecordType) error {
	for i, r := range records {
		key := recordItem(r.Key)
		value := recordItem(r.Value)
		label := taint.Label(r.Label)

		var err error
		if r.Untrusted {
			err = store.Set(
				tracked.New(index, key, label, false),
				tracked.New(index, value, label, false),
			)
		} else {
			err = store.SetWithLabel(key, value, label)
		}
		if nil != err {
			log.Errorf("record[%d]: key: %v  error: %s", i, r.Key, err)
			return err
		}
		log.Debugf("record[%d]: key: %v  label: %s", i, key, label)
	}
	log.Infof("store: %d entries  %d tracked values", store.Size(), index.Size())
	return nil
}
