// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package redactor

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/limitedset"
	"github.com/bitmark-inc/splice/taint"
)

const recentFiles = 1000

// Submitter - where spool requests are sent
type Submitter interface {
	Submit(label taint.Label, source string) error
}

// Spool - watches a directory for request files
//
// each file holds one decimal taint label and is removed once its
// request has been queued
type Spool struct {
	log       *logger.L
	directory string
	watcher   *fsnotify.Watcher
	submitter Submitter
	recent    *limitedset.LimitedSet
}

// NewSpool - watch directory, which must exist
func NewSpool(directory string, submitter Submitter) (*Spool, error) {
	path, err := filepath.Abs(filepath.Clean(directory))
	if nil != err {
		return nil, err
	}
	info, err := os.Stat(path)
	if nil != err {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fault.ErrSpoolNotDirectory
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}
	err = watcher.Add(path)
	if nil != err {
		watcher.Close()
		return nil, err
	}

	return &Spool{
		log:       logger.New("spool"),
		directory: path,
		watcher:   watcher,
		submitter: submitter,
		recent:    limitedset.New(recentFiles),
	}, nil
}

// Directory - absolute path being watched
func (s *Spool) Directory() string {
	return s.directory
}

// Run - background process: pick up existing files then follow
// events, see background.Process
func (s *Spool) Run(args interface{}, shutdown <-chan struct{}) {
	s.log.Infof("watching: %s", s.directory)
	s.Scan()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case event, ok := <-s.watcher.Events:
			if !ok {
				break loop
			}
			s.log.Debugf("file event: %v", event)
			if eventFileRemove(event) {
				s.recent.Remove(filepath.Base(event.Name))
				continue
			}
			if eventFileChange(event) {
				s.pickup(event.Name)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				break loop
			}
			s.log.Errorf("watcher error: %s", err)
		}
	}

	s.watcher.Close()
	s.log.Info("stopped")
}

// Scan - queue every file already in the spool
func (s *Spool) Scan() {
	files, err := ioutil.ReadDir(s.directory)
	if nil != err {
		s.log.Errorf("scan: %s  error: %s", s.directory, err)
		return
	}
	for _, f := range files {
		if f.Mode().IsRegular() {
			s.pickup(filepath.Join(s.directory, f.Name()))
		}
	}
}

// read one request file, an empty file is left for its next write
func (s *Spool) pickup(path string) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return
	}
	if !s.recent.Add(name) {
		return
	}

	data, err := ioutil.ReadFile(path)
	if nil != err {
		s.recent.Remove(name)
		if !os.IsNotExist(err) {
			s.log.Errorf("read: %s  error: %s", name, err)
		}
		return
	}
	if 0 == len(strings.TrimSpace(string(data))) {
		s.recent.Remove(name)
		return
	}

	label, err := taint.ParseLabel(string(data))
	if nil != err || label.IsEmpty() {
		s.log.Warnf("discard: %s  invalid label: %q", name, data)
		s.remove(path)
		return
	}

	err = s.submitter.Submit(label, name)
	if nil != err {
		// keep the file for the next scan
		s.log.Warnf("submit: %s  error: %s", name, err)
		s.recent.Remove(name)
		return
	}
	s.remove(path)
}

func (s *Spool) remove(path string) {
	err := os.Remove(path)
	if nil != err && !os.IsNotExist(err) {
		s.log.Errorf("remove: %s  error: %s", path, err)
	}
}

func eventFileRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func eventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
