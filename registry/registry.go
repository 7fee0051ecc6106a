// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/splice/counter"
	"github.com/bitmark-inc/splice/taint"
	"github.com/bitmark-inc/splice/tracked"
)

// Registry - label index
type Registry struct {
	sync.RWMutex
	byLabel    map[taint.Label]map[uint64]*tracked.Value
	where      map[uint64]taint.Label
	generation counter.Sequence
}

// New - create an empty registry
func New() *Registry {
	return &Registry{
		byLabel: make(map[taint.Label]map[uint64]*tracked.Value),
		where:   make(map[uint64]taint.Label),
	}
}

// Register - add a value under its current label
//
// the label is read with the registry locked so that a concurrent
// SetLabel either sees the value registered or is seen here
func (r *Registry) Register(v *tracked.Value) {
	r.Lock()
	defer r.Unlock()

	label := v.Label()
	r.where[v.ID()] = label
	r.add(label, v)
	r.generation.Next()
}

// Deregister - forget a value
func (r *Registry) Deregister(v *tracked.Value) {
	r.Lock()
	defer r.Unlock()

	label, ok := r.where[v.ID()]
	if !ok {
		return
	}
	delete(r.where, v.ID())
	r.remove(label, v)
	r.generation.Next()
}

// Relabel - move a value to the set of its current label
func (r *Registry) Relabel(v *tracked.Value) {
	r.Lock()
	defer r.Unlock()

	old, ok := r.where[v.ID()]
	if !ok {
		return
	}
	label := v.Label()
	if old == label {
		return
	}
	r.remove(old, v)
	r.add(label, v)
	r.where[v.ID()] = label
	r.generation.Next()
}

// internal: lock must be held
func (r *Registry) add(label taint.Label, v *tracked.Value) {
	if label.IsEmpty() {
		return
	}
	set, ok := r.byLabel[label]
	if !ok {
		set = make(map[uint64]*tracked.Value)
		r.byLabel[label] = set
	}
	set[v.ID()] = v
}

// internal: lock must be held
func (r *Registry) remove(label taint.Label, v *tracked.Value) {
	set, ok := r.byLabel[label]
	if !ok {
		return
	}
	delete(set, v.ID())
	if 0 == len(set) {
		delete(r.byLabel, label)
	}
}

// Snapshot - the values carrying a label, in creation order, and the
// registry generation they were read at
func (r *Registry) Snapshot(label taint.Label) ([]*tracked.Value, uint64) {
	r.RLock()
	defer r.RUnlock()

	set := r.byLabel[label]
	values := make([]*tracked.Value, 0, len(set))
	for _, v := range set {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		return values[i].ID() < values[j].ID()
	})
	return values, r.generation.Current()
}

// Count - number of values carrying a label
func (r *Registry) Count(label taint.Label) int {
	r.RLock()
	defer r.RUnlock()
	return len(r.byLabel[label])
}

// Size - number of registered values, labelled or not
func (r *Registry) Size() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.where)
}

// Labels - all labels that currently have values
func (r *Registry) Labels() []taint.Label {
	r.RLock()
	defer r.RUnlock()

	labels := make([]taint.Label, 0, len(r.byLabel))
	for l := range r.byLabel {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	})
	return labels
}

// Generation - changes whenever the index changes
func (r *Registry) Generation() uint64 {
	return r.generation.Current()
}
