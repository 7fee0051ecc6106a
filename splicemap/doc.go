// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package splicemap - a key/value map whose keys and values carry
// taint tags
//
// Every key is stored with a predicate binding any replacement to the
// key's hash, so that a redaction can later swap the key for a
// synthesized one without moving it to a different chain.  Values
// carry no predicate and can be replaced by anything of their kind.
//
// The map is the container that a redaction calls back into: it
// implements tracked.Container.
package splicemap
