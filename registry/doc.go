// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - index of live tracked values by taint label
//
// Every tracked value registers itself when created and deregisters
// when its container drops it, so a redaction only enumerates the
// values that carry the label it is looking for.  Values with the
// Empty label are counted but not indexed.
package registry
