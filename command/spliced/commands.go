// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/splice/redactor"
	"github.com/bitmark-inc/splice/registry"
	"github.com/bitmark-inc/splice/splicemap"
	"github.com/bitmark-inc/splice/sweep"
	"github.com/bitmark-inc/splice/taint"
	"github.com/bitmark-inc/splice/tracked"
)

// the parts of a running store that data commands may use
type services struct {
	index    *registry.Registry
	store    *splicemap.Map
	sweeper  *sweep.Sweeper
	recorder redactor.Recorder
}

// setup command handler
//
// commands that do not need the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "sweep", "s", "labels", "l", "dump", "d":
		return false // defer processing until store is loaded

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  labels                     (l)      - list taint labels with their value counts\n")
		fmt.Printf("\n")

		fmt.Printf("  dump                       (d)      - print the store contents with their tags\n")
		fmt.Printf("\n")

		fmt.Printf("  sweep LABEL                (s)      - redact one label, journal and print the report\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the store, sweeper and journal are available to these commands
func processDataCommand(log *logger.L, arguments []string, s services) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "labels", "l":
		for _, label := range s.index.Labels() {
			fmt.Printf("%s: %d\n", label, s.index.Count(label))
		}

	case "dump", "d":
		type item struct {
			Key   string `json:"key"`
			Value string `json:"value"`
			Label string `json:"label"`
			Flags string `json:"flags"`
		}
		items := make([]item, 0, s.store.Size())
		s.store.Each(func(key *tracked.Value, value *tracked.Value) bool {
			tag := value.Tag()
			items = append(items, item{
				Key:   key.Scalar().String(),
				Value: value.Scalar().String(),
				Label: tag.Label.String(),
				Flags: flags(tag),
			})
			return true
		})
		printJSON(items)

	case "sweep", "s":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing label argument")
		}
		label, err := taint.ParseLabel(arguments[0])
		if nil != err {
			exitwithstatus.Message("error in label: %q  error: %s", arguments[0], err)
		}
		if label.IsEmpty() {
			exitwithstatus.Message("error: label must not be zero")
		}

		report := s.sweeper.Run(context.Background(), label)
		if err := s.recorder.Record(report); nil != err {
			log.Errorf("journal record: %s  error: %s", report.ID, err)
			exitwithstatus.Message("journal record error: %s", err)
		}
		printJSON(report)

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

// t = trusted, s = synthesized
func flags(tag taint.Tag) string {
	f := []byte("--")
	if tag.Trusted {
		f[0] = 't'
	}
	if tag.Synthesized {
		f[1] = 's'
	}
	return string(f)
}

func printJSON(message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		exitwithstatus.Message("JSON error: %s", err)
	}
	fmt.Printf("%s\n", b)
}
