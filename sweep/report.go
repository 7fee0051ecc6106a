// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sweep

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/taint"
)

// Outcome - what happened to one value
type Outcome int

// outcomes
const (
	Replaced        Outcome = iota // synthesized replacement is in place
	Degraded                       // no replacement, trust and label dropped
	UnsupportedType                // kind cannot be synthesized, trust and label dropped
	Stale                          // changed or removed during the sweep, nothing applied
	Aborted                        // sweep was cancelled before this value
)

var outcomeNames = []string{
	Replaced:        "replaced",
	Degraded:        "degraded",
	UnsupportedType: "unsupported-type",
	Stale:           "stale",
	Aborted:         "aborted",
}

// Outcomes - every outcome in order
var Outcomes = []Outcome{Replaced, Degraded, UnsupportedType, Stale, Aborted}

// String - printable name
func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// MarshalText - encode as the name
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText - decode a name
func (o *Outcome) UnmarshalText(s []byte) error {
	for i, name := range outcomeNames {
		if name == string(s) {
			*o = Outcome(i)
			return nil
		}
	}
	return fault.ErrInvalidOutcome
}

// Entry - the outcome for one value
type Entry struct {
	Value    uint64  `json:"value"`
	Role     string  `json:"role"`
	Kind     string  `json:"kind"`
	Outcome  Outcome `json:"outcome"`
	Attempts int     `json:"attempts"`
	Error    string  `json:"error,omitempty"`
	err      error
}

// Report - the result of one sweep
type Report struct {
	ID       string      `json:"id"`
	Label    taint.Label `json:"label"`
	Started  time.Time   `json:"started"`
	Finished time.Time   `json:"finished"`
	Entries  []Entry     `json:"entries"`
}

// Count - number of entries with an outcome
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, e := range r.Entries {
		if o == e.Outcome {
			n += 1
		}
	}
	return n
}

// Counts - entries per outcome name, for logging
func (r *Report) Counts() map[string]int {
	counts := make(map[string]int, len(Outcomes))
	for _, o := range Outcomes {
		if n := r.Count(o); n > 0 {
			counts[o.String()] = n
		}
	}
	return counts
}

// Err - every per value error of the sweep, nil if there were none
//
// a report read back from a journal only has the error text
func (r *Report) Err() error {
	var result *multierror.Error
	for _, e := range r.Entries {
		switch {
		case nil != e.err:
			result = multierror.Append(result, fmt.Errorf("%s#%d: %w", e.Role, e.Value, e.err))
		case "" != e.Error:
			result = multierror.Append(result, fmt.Errorf("%s#%d: %s", e.Role, e.Value, e.Error))
		}
	}
	return result.ErrorOrNil()
}

func (r *Report) add(e Entry) {
	if nil != e.err {
		e.Error = e.err.Error()
	}
	r.Entries = append(r.Entries, e)
}
