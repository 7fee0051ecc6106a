// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/splice/taint"
	"github.com/bitmark-inc/splice/util"
)

func runRequest(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	label := taint.Label(c.Uint64("label"))
	if label.IsEmpty() {
		return ErrLabelRequired
	}
	if "" == m.spool {
		return ErrSpoolRequired
	}
	if err := util.EnsureDirectory(m.spool); nil != err {
		return err
	}

	name, err := writeRequest(m.spool, label)
	if nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "label: %s\n", label)
	}

	return printRequest(m.w, label, name)
}

// the spool ignores dot files so the rename is the only event it acts on
func writeRequest(directory string, label taint.Label) (string, error) {
	id := uuid.New().String()
	temporary := filepath.Join(directory, "."+id)
	name := filepath.Join(directory, "request-"+id)

	err := os.WriteFile(temporary, []byte(label.String()+"\n"), 0600)
	if nil != err {
		return "", err
	}
	err = os.Rename(temporary, name)
	if nil != err {
		os.Remove(temporary)
		return "", err
	}
	return name, nil
}
