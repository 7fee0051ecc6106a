// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/splice/journal"
	"github.com/bitmark-inc/splice/taint"
)

// open read only, the returned function closes the journal and its log
func openJournal(m *metadata) (*journal.Journal, func(), error) {
	if "" == m.journal {
		return nil, nil, ErrJournalRequired
	}
	if m.verbose {
		fmt.Fprintf(m.e, "journal: %s\n", m.journal)
	}

	logging := logger.Configuration{
		Directory: os.TempDir(),
		File:      "splicectl.log",
		Size:      1048576,
		Count:     10,
		Console:   m.verbose,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		return nil, nil, err
	}

	j, err := journal.Open(m.journal, journal.ReadOnly)
	if nil != err {
		logger.Finalise()
		return nil, nil, err
	}
	return j, func() {
		j.Close()
		logger.Finalise()
	}, nil
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	j, done, err := openJournal(m)
	if nil != err {
		return err
	}
	defer done()

	reports, err := j.List(count)
	if nil != err {
		return err
	}

	return printSummaries(m.w, reports)
}

func runShow(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id := c.String("id")
	if "" == id {
		return ErrReportIDRequired
	}

	j, done, err := openJournal(m)
	if nil != err {
		return err
	}
	defer done()

	report, err := j.Get(id)
	if nil != err {
		return err
	}

	if m.verbose {
		if err := report.Err(); nil != err {
			fmt.Fprintf(m.e, "%s\n", err)
		}
	}

	return printReport(m.w, report)
}

func runLabel(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	label := taint.Label(c.Uint64("label"))
	if label.IsEmpty() {
		return ErrLabelRequired
	}

	j, done, err := openJournal(m)
	if nil != err {
		return err
	}
	defer done()

	reports, err := j.ByLabel(label)
	if nil != err {
		return err
	}

	return printSummaries(m.w, reports)
}
