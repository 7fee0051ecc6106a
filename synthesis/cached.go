// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package synthesis

import (
	"context"
	"encoding/hex"
	"time"

	cache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/splice/constraint"
	"github.com/bitmark-inc/splice/scalar"
)

const (
	defaultExpiration = 10 * time.Minute
	cleanupInterval   = 15 * time.Minute
)

// Cached - remembers the results of an oracle
//
// errors are never cached, so a cancelled call is retried in full
type Cached struct {
	oracle Oracle
	cache  *cache.Cache
}

// NewCached - wrap an oracle, expiry <= 0 selects the default
func NewCached(oracle Oracle, expiry time.Duration) *Cached {
	if expiry <= 0 {
		expiry = defaultExpiration
	}
	return &Cached{
		oracle: oracle,
		cache:  cache.New(expiry, cleanupInterval),
	}
}

// Synthesize - return a remembered result or ask the wrapped oracle
func (c *Cached) Synthesize(ctx context.Context, predicate constraint.Expr, domain scalar.Kind) (Result, error) {
	key := Fingerprint(predicate, domain)
	if obj, found := c.cache.Get(key); found {
		return obj.(Result), nil
	}

	result, err := c.oracle.Synthesize(ctx, predicate, domain)
	if nil != err {
		return result, err
	}
	c.cache.SetDefault(key, result)
	return result, nil
}

// Size - number of remembered results
func (c *Cached) Size() int {
	return c.cache.ItemCount()
}

// Flush - forget everything
func (c *Cached) Flush() {
	c.cache.Flush()
}

// Fingerprint - SHA3-256 of the domain and the printed predicate
func Fingerprint(predicate constraint.Expr, domain scalar.Kind) string {
	h := sha3.New256()
	h.Write([]byte(domain.String()))
	h.Write([]byte{0})
	h.Write([]byte(predicate.String()))
	return hex.EncodeToString(h.Sum(nil))
}
