// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/splice/fault"
)

// table prefixes
const (
	reportPrefix = 'R'
	idPrefix     = 'I'
	labelPrefix  = 'L'
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentVersion = 0x100

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Journal - an open report database
type Journal struct {
	sync.RWMutex
	database *leveldb.DB
	log      *logger.L

	reports *poolHandle
	ids     *poolHandle
	labels  *poolHandle
}

// Open - open or create the database at path
func Open(path string, readOnly bool) (*Journal, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(path, opt)
	if nil != err {
		return nil, err
	}

	log := logger.New("journal")

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}
	switch {
	case version > currentVersion:
		db.Close()
		log.Criticalf("journal version: %d > current version: %d", version, currentVersion)
		return nil, fmt.Errorf("journal version: %d > current version: %d", version, currentVersion)
	case 0 == version && !readOnly:
		err = putVersion(db, currentVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
	}

	log.Infof("opened: %s  version: %d", path, version)

	j := &Journal{
		database: db,
		log:      log,
	}
	j.reports = newPool(j, reportPrefix)
	j.ids = newPool(j, idPrefix)
	j.labels = newPool(j, labelPrefix)
	return j, nil
}

// Close - close the database, further use fails
func (j *Journal) Close() error {
	j.Lock()
	defer j.Unlock()

	if nil == j.database {
		return fault.ErrDatabaseIsNotSet
	}
	err := j.database.Close()
	j.database = nil
	j.log.Info("closed")
	return err
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}
	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	v := make([]byte, 4)
	binary.BigEndian.PutUint32(v, uint32(version))
	return db.Put(versionKey, v, nil)
}
