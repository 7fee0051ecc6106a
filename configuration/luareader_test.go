// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/splice/configuration"
	"github.com/bitmark-inc/splice/fault"
)

type store struct {
	Buckets int `gluamapper:"buckets"`
}

type options struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Name          string            `gluamapper:"name"`
	Store         store             `gluamapper:"store"`
	Levels        map[string]string `gluamapper:"levels"`
	Untouched     string            `gluamapper:"untouched"`
}

func write(t *testing.T, text string) string {
	name := filepath.Join(t.TempDir(), "test.conf")
	require.NoError(t, os.WriteFile(name, []byte(text), 0600), "write configuration")
	return name
}

func TestParse(t *testing.T) {
	name := write(t, `
local M = {}
M.data_directory = "."
M.name = "from-" .. node
M.store = { buckets = 17 }
M.levels = { DEFAULT = "info", sweep = "debug" }
M.config_file = arg[0]
return M
`)

	o := &options{
		Untouched: "default",
	}
	err := configuration.ParseConfigurationFile(name, o, map[string]string{"node": "alpha"})
	require.NoError(t, err, "parse")

	assert.Equal(t, ".", o.DataDirectory, "data directory")
	assert.Equal(t, "from-alpha", o.Name, "variable substitution")
	assert.Equal(t, 17, o.Store.Buckets, "nested table")
	assert.Equal(t, "debug", o.Levels["sweep"], "map entry")
	assert.Equal(t, "default", o.Untouched, "default must survive")
}

func TestParseNotStruct(t *testing.T) {
	name := write(t, `return {}`)

	var n int
	err := configuration.ParseConfigurationFile(name, &n, nil)
	assert.Equal(t, fault.ErrConfigurationNotStruct, err, "int pointer")

	err = configuration.ParseConfigurationFile(name, options{}, nil)
	assert.Equal(t, fault.ErrConfigurationNotStruct, err, "struct value")

	err = configuration.ParseConfigurationFile(name, nil, nil)
	assert.Equal(t, fault.ErrConfigurationNotStruct, err, "nil")
}

func TestParseNoTable(t *testing.T) {
	name := write(t, `local x = 1`)

	err := configuration.ParseConfigurationFile(name, &options{}, nil)
	assert.Equal(t, fault.ErrConfigurationNotTable, err, "no returned table")
}

func TestParseSyntaxError(t *testing.T) {
	name := write(t, `return {`)

	err := configuration.ParseConfigurationFile(name, &options{}, nil)
	assert.Error(t, err, "syntax error")
}
