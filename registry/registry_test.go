// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/splice/registry"
	"github.com/bitmark-inc/splice/taint"
	"github.com/bitmark-inc/splice/tracked"
)

func TestSnapshotOrder(t *testing.T) {
	r := registry.New()

	a := tracked.New(r, "a", 9, true)
	b := tracked.New(r, "b", 9, true)
	tracked.New(r, "c", 8, true)
	d := tracked.New(r, "d", 9, true)

	g := r.Generation()
	values, generation := r.Snapshot(9)
	assert.Equal(t, []*tracked.Value{a, b, d}, values)
	assert.Equal(t, g, generation)

	assert.Equal(t, []taint.Label{8, 9}, r.Labels())
	assert.Empty(t, mustSnapshot(r, 1))
}

func mustSnapshot(r *registry.Registry, label taint.Label) []*tracked.Value {
	values, _ := r.Snapshot(label)
	return values
}

func TestDeregister(t *testing.T) {
	r := registry.New()
	a := tracked.New(r, "a", 9, true)

	g := r.Generation()
	r.Deregister(a)
	assert.NotEqual(t, g, r.Generation())
	assert.Equal(t, 0, r.Count(9))
	assert.Empty(t, r.Labels())

	// unknown values are ignored
	g = r.Generation()
	r.Deregister(a)
	assert.Equal(t, g, r.Generation())
}

func TestRelabel(t *testing.T) {
	r := registry.New()
	a := tracked.New(r, "a", taint.Empty, true)
	assert.Equal(t, 1, r.Size())
	assert.Empty(t, r.Labels())

	a.SetLabel(4)
	assert.Equal(t, []*tracked.Value{a}, mustSnapshot(r, 4))

	a.SetLabel(taint.Empty)
	assert.Equal(t, 0, r.Count(4))
	assert.Equal(t, 1, r.Size())
}

func TestConcurrentRegistration(t *testing.T) {
	r := registry.New()

	const workers = 8
	const each = 100

	wg := sync.WaitGroup{}
	for w := 0; w < workers; w += 1 {
		wg.Add(1)
		go func(label taint.Label) {
			defer wg.Done()
			for i := 0; i < each; i += 1 {
				v := tracked.New(r, i, label, true)
				if 0 == i%2 {
					v.Retire(false)
				}
			}
		}(taint.Label(w%2 + 1))
	}
	wg.Wait()

	assert.Equal(t, workers*each/2, r.Size())
	assert.Equal(t, workers*each/4, r.Count(1))
	assert.Equal(t, workers*each/4, r.Count(2))
}

func TestRegisterWhileRelabelled(t *testing.T) {
	r := registry.New()
	v := tracked.New(r, "x", 1, true)

	for i := 0; i < 200; i += 1 {
		r.Deregister(v)

		wg := sync.WaitGroup{}
		wg.Add(1)
		go func(label taint.Label) {
			defer wg.Done()
			v.SetLabel(label)
		}(taint.Label(i%2 + 2))
		r.Register(v)
		wg.Wait()

		label := v.Label()
		assert.Equal(t, []*tracked.Value{v}, mustSnapshot(r, label))
		assert.Equal(t, []taint.Label{label}, r.Labels())
	}
}
