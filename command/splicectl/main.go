// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	journal string
	spool   string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "splicectl"
	app.Usage = "inspect the redaction journal and request redactions"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "journal, j",
			Value: "",
			Usage: " journal database `DIR`",
		},
		cli.StringFlag{
			Name:  "spool, s",
			Value: "",
			Usage: " request spool `DIR`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "list",
			Usage:     "list the most recent sweep reports",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, c",
					Value: 10,
					Usage: " number of reports `COUNT`",
				},
			},
			Action: runList,
		},
		{
			Name:      "show",
			Usage:     "show one sweep report",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*report `ID`",
				},
			},
			Action: runShow,
		},
		{
			Name:      "label",
			Usage:     "all sweep reports for a taint label",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "label, l",
					Value: 0,
					Usage: "*taint `LABEL`",
				},
			},
			Action: runLabel,
		},
		{
			Name:      "request",
			Usage:     "ask a running spliced to redact a taint label",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "label, l",
					Value: 0,
					Usage: "*taint `LABEL`",
				},
			},
			Action: runRequest,
		},
		{
			Name:  "version",
			Usage: "display splicectl version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		m := &metadata{
			journal: c.GlobalString("journal"),
			spool:   c.GlobalString("spool"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		c.App.Metadata = map[string]interface{}{
			"config": m,
		}
		return nil
	}

	return app
}
