// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sweep

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	outcomeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splice_sweep_outcomes_total",
		Help: "Values handled by redaction sweeps by outcome",
	}, []string{"outcome"})

	sweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "splice_sweep_duration_seconds",
		Help:    "Redaction sweep duration",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
	})

	oracleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "splice_oracle_duration_seconds",
		Help:    "Time spent in the synthesis oracle per value",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	})
)
