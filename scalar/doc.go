// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package scalar - the closed set of value kinds that can be tagged
// and synthesized
//
// Only bounded integers (int64) and text are supported.  Anything
// else can still be carried as Unsupported so that it can be reported,
// but it is never placed in a table.
package scalar
