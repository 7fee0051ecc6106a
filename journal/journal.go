// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal

import (
	"encoding/binary"
	"encoding/json"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/sweep"
	"github.com/bitmark-inc/splice/taint"
)

// Record - store a sweep report with its indexes in one batch
func (j *Journal) Record(report *sweep.Report) error {
	data, err := json.Marshal(report)
	if nil != err {
		return err
	}

	key := reportKey(report)

	batch := new(leveldb.Batch)
	j.reports.put(batch, key, data)
	j.ids.put(batch, []byte(report.ID), key)
	j.labels.put(batch, append(labelBytes(report.Label), key...), key)

	j.Lock()
	defer j.Unlock()

	if nil == j.database {
		return fault.ErrDatabaseIsNotSet
	}
	err = j.database.Write(batch, nil)
	if nil != err {
		j.log.Errorf("record: %s  error: %s", report.ID, err)
		return err
	}
	j.log.Debugf("record: %s  label: %s  entries: %d", report.ID, report.Label, len(report.Entries))
	return nil
}

// Get - a report by its id
//
// fails with fault.ErrReportNotFound if absent
func (j *Journal) Get(id string) (*sweep.Report, error) {
	j.RLock()
	defer j.RUnlock()

	key, err := j.ids.get([]byte(id))
	if nil != err {
		return nil, err
	}
	if nil == key {
		return nil, fault.ErrReportNotFound
	}
	return j.read(key)
}

// List - the newest reports, at most n (all if n <= 0)
func (j *Journal) List(n int) ([]*sweep.Report, error) {
	j.RLock()
	defer j.RUnlock()

	elements, err := j.reports.scan(nil, true, n)
	if nil != err {
		return nil, err
	}
	reports := make([]*sweep.Report, 0, len(elements))
	for _, e := range elements {
		r, err := decode(e.Value)
		if nil != err {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// ByLabel - every report for a label, oldest first
func (j *Journal) ByLabel(label taint.Label) ([]*sweep.Report, error) {
	j.RLock()
	defer j.RUnlock()

	elements, err := j.labels.scan(labelBytes(label), false, 0)
	if nil != err {
		return nil, err
	}
	reports := make([]*sweep.Report, 0, len(elements))
	for _, e := range elements {
		r, err := j.read(e.Value)
		if nil != err {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// internal: lock must be held
func (j *Journal) read(key []byte) (*sweep.Report, error) {
	data, err := j.reports.get(key)
	if nil != err {
		return nil, err
	}
	if nil == data {
		return nil, fault.ErrReportNotFound
	}
	return decode(data)
}

func decode(data []byte) (*sweep.Report, error) {
	r := &sweep.Report{}
	err := json.Unmarshal(data, r)
	if nil != err {
		return nil, err
	}
	return r, nil
}

// started ++ id
func reportKey(report *sweep.Report) []byte {
	key := make([]byte, 8, 8+len(report.ID))
	binary.BigEndian.PutUint64(key, uint64(report.Started.UnixNano()))
	return append(key, report.ID...)
}

func labelBytes(label taint.Label) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(label))
	return b
}
