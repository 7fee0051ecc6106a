// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"io"

	"github.com/bitmark-inc/splice/sweep"
	"github.com/bitmark-inc/splice/taint"
)

// one line per report
type summary struct {
	ID       string         `json:"id"`
	Label    taint.Label    `json:"label"`
	Started  string         `json:"started"`
	Duration string         `json:"duration"`
	Outcomes map[string]int `json:"outcomes"`
}

// the reply to a request command
type requested struct {
	Label   string `json:"label"`
	Request string `json:"request"`
}

func summarise(reports []*sweep.Report) []summary {
	s := make([]summary, len(reports))
	for i, r := range reports {
		s[i] = summary{
			ID:       r.ID,
			Label:    r.Label,
			Started:  r.Started.UTC().Format("2006-01-02T15:04:05.000Z"),
			Duration: r.Finished.Sub(r.Started).String(),
			Outcomes: r.Counts(),
		}
	}
	return s
}

// printSummaries - the list, label commands
func printSummaries(handle io.Writer, reports []*sweep.Report) error {
	return printJson(handle, summarise(reports))
}

// printReport - the show command, every entry of a report
func printReport(handle io.Writer, report *sweep.Report) error {
	return printJson(handle, report)
}

// printRequest - the request command, the spool file that was written
func printRequest(handle io.Writer, label taint.Label, name string) error {
	return printJson(handle, requested{
		Label:   label.String(),
		Request: name,
	})
}

func printJson(handle io.Writer, message interface{}) error {
	encoder := json.NewEncoder(handle)
	encoder.SetIndent("", "  ")
	return encoder.Encode(message)
}
