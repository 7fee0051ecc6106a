// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/splice/configuration"
	"github.com/bitmark-inc/splice/redactor"
	"github.com/bitmark-inc/splice/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultBuckets = 10

	defaultJournalDirectory = "data"
	defaultJournalDatabase  = "journal.leveldb"
	defaultSpoolDirectory   = "spool"

	defaultMaxAttempts  = 4096
	defaultOracleTimeMs = 2000
	defaultCacheSeconds = 600

	defaultLogDirectory = "log"
	defaultLogFile      = "spliced.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// RecordType - one initial store entry
//
// key and value are Lua numbers or strings
type RecordType struct {
	Key       interface{} `gluamapper:"key" json:"key"`
	Value     interface{} `gluamapper:"value" json:"value"`
	Label     uint64      `gluamapper:"label" json:"label"`
	Untrusted bool        `gluamapper:"untrusted" json:"untrusted"`
}

type StoreType struct {
	Buckets int          `gluamapper:"buckets" json:"buckets"`
	Records []RecordType `gluamapper:"records" json:"records"`
}

type OracleType struct {
	MaxAttempts  int   `gluamapper:"max_attempts" json:"max_attempts"`
	Seed         int64 `gluamapper:"seed" json:"seed"`
	TimeoutMs    int   `gluamapper:"timeout_ms" json:"timeout_ms"`
	CacheSeconds int   `gluamapper:"cache_seconds" json:"cache_seconds"` // zero disables the cache
}

type SweepType struct {
	RequireDistinct bool `gluamapper:"require_distinct" json:"require_distinct"`
	Retries         int  `gluamapper:"retries" json:"retries"`
}

type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

type Configuration struct {
	DataDirectory string                 `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string                 `gluamapper:"pidfile" json:"pidfile"`
	MetricsHTTP   string                 `gluamapper:"metrics_http" json:"metrics_http"`
	Spool         string                 `gluamapper:"spool" json:"spool"`
	Journal       DatabaseType           `gluamapper:"journal" json:"journal"`
	Store         StoreType              `gluamapper:"store" json:"store"`
	Oracle        OracleType             `gluamapper:"oracle" json:"oracle"`
	Sweep         SweepType              `gluamapper:"sweep" json:"sweep"`
	Redactor      redactor.Configuration `gluamapper:"redactor" json:"redactor"`
	Logging       logger.Configuration   `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		MetricsHTTP:   "", // no metrics listener by default
		Spool:         defaultSpoolDirectory,

		Journal: DatabaseType{
			Directory: defaultJournalDirectory,
			Name:      defaultJournalDatabase,
		},

		Store: StoreType{
			Buckets: defaultBuckets,
		},

		Oracle: OracleType{
			MaxAttempts:  defaultMaxAttempts,
			TimeoutMs:    defaultOracleTimeMs,
			CacheSeconds: defaultCacheSeconds,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	if options.Store.Buckets <= 0 {
		return nil, fmt.Errorf("Store: buckets: %d must be positive", options.Store.Buckets)
	}
	for i, r := range options.Store.Records {
		if nil == r.Key || nil == r.Value {
			return nil, fmt.Errorf("Store: record[%d] requires both key and value", i)
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if err := util.EnsureDirectory(options.DataDirectory); nil != err {
		return nil, fmt.Errorf("Path: %q error: %s", options.DataDirectory, err)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Journal.Directory,
		&options.Logging.Directory,
		&options.Spool,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Journal.Name, &options.Journal.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		if nil == f[1] {
			if _, err := util.PlainFileName("", *f[0]); nil != err {
				return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
			}
			continue
		}
		name, err := util.PlainFileName(*f[1], *f[0])
		if nil != err {
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
		*f[0] = name
	}

	// done
	return options, nil
}
