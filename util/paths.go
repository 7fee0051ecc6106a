// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/splice/fault"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureFileExists - check if file exists
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

// EnsureDirectory - fail unless the path names an existing directory
func EnsureDirectory(name string) error {
	if "" == name || "~" == name {
		return fault.ErrInvalidDirectory
	}
	fileInfo, err := os.Stat(name)
	if nil != err {
		return err
	}
	if !fileInfo.IsDir() {
		return fault.ErrInvalidDirectory
	}
	return nil
}

// PlainFileName - prefix a simple file name with a directory
//
// the name must not already contain a path separator
func PlainFileName(directory string, name string) (string, error) {
	switch filepath.Dir(name) {
	case "", ".":
		return EnsureAbsolute(directory, name), nil
	default:
		return "", fault.ErrInvalidFileName
	}
}
