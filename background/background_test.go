// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/splice/background"
)

type ticker struct {
	count    int64
	finished int32
}

func (state *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	step := args.(int64)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			atomic.AddInt64(&state.count, step)
		}
	}
	atomic.StoreInt32(&state.finished, 1)
}

func TestStartStop(t *testing.T) {
	proc1 := &ticker{}
	proc2 := &ticker{}

	p := background.Start(background.Processes{proc1, proc2}, int64(3))
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&proc1.finished))
	assert.Equal(t, int32(1), atomic.LoadInt32(&proc2.finished))
	assert.True(t, atomic.LoadInt64(&proc1.count) > 0)
	assert.Equal(t, int64(0), atomic.LoadInt64(&proc1.count)%3)

	// no progress after stop and stop is idempotent
	n := atomic.LoadInt64(&proc1.count)
	p.Stop()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, n, atomic.LoadInt64(&proc1.count))
}
