// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/splice/background"
	"github.com/bitmark-inc/splice/journal"
	"github.com/bitmark-inc/splice/redactor"
	"github.com/bitmark-inc/splice/registry"
	"github.com/bitmark-inc/splice/splicemap"
	"github.com/bitmark-inc/splice/sweep"
	"github.com/bitmark-inc/splice/synthesis"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "define", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'D'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// NAME=VALUE pairs become Lua globals
	variables := make(map[string]string)
	for _, d := range options["define"] {
		name, value, ok := strings.Cut(d, "=")
		if !ok || "" == name {
			exitwithstatus.Message("%s: define: %q is not NAME=VALUE", program, d)
		}
		variables[name] = value
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile, variables)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// the store and its label index
	log.Info("initialise store")
	index := registry.New()
	store, err := splicemap.NewWithBuckets(index, theConfiguration.Store.Buckets)
	if nil != err {
		log.Criticalf("store initialise error: %s", err)
		exitwithstatus.Message("store initialise error: %s", err)
	}
	err = seedStore(log, index, store, theConfiguration.Store.Records)
	if nil != err {
		log.Criticalf("store records error: %s", err)
		exitwithstatus.Message("store records error: %s", err)
	}

	// synthesis oracle
	oc := theConfiguration.Oracle
	log.Debugf("%s = %#v", "Oracle", oc)
	var oracle synthesis.Oracle = synthesis.Limited{
		Oracle: synthesis.NewSolver(synthesis.Options{
			MaxAttempts: oc.MaxAttempts,
			Seed:        oc.Seed,
		}),
		Timeout: time.Duration(oc.TimeoutMs) * time.Millisecond,
	}
	if oc.CacheSeconds > 0 {
		oracle = synthesis.NewCached(oracle, time.Duration(oc.CacheSeconds)*time.Second)
	}

	sweeper := sweep.New(index, oracle, sweep.Options{
		RequireDistinct: theConfiguration.Sweep.RequireDistinct,
		Retries:         theConfiguration.Sweep.Retries,
	})

	// audit journal
	log.Infof("journal: %q", theConfiguration.Journal.Name)
	theJournal, err := journal.Open(theConfiguration.Journal.Name, journal.ReadWrite)
	if nil != err {
		log.Criticalf("journal open error: %s", err)
		exitwithstatus.Message("journal open error: %s", err)
	}
	defer theJournal.Close()

	// these commands are allowed to access the store and journal
	if len(arguments) > 0 && processDataCommand(log, arguments, services{
		index:    index,
		store:    store,
		sweeper:  sweeper,
		recorder: theJournal,
	}) {
		return
	}

	// optional metrics listener
	if "" != theConfiguration.MetricsHTTP {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Warnf("metrics listener on: %s", theConfiguration.MetricsHTTP)
			err := http.ListenAndServe(theConfiguration.MetricsHTTP, mux)
			exitwithstatus.Message("metrics error: %s", err)
		}()
	}

	// request queue and spool watcher
	log.Debugf("%s = %#v", "Redactor", theConfiguration.Redactor)
	theRedactor := redactor.New(theConfiguration.Redactor, sweeper, theJournal)
	spool, err := redactor.NewSpool(theConfiguration.Spool, theRedactor)
	if nil != err {
		log.Criticalf("spool initialise error: %s", err)
		exitwithstatus.Message("spool initialise error: %s", err)
	}
	log.Infof("spool: %q", spool.Directory())

	processes := background.Start(background.Processes{theRedactor, spool}, nil)
	defer processes.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
