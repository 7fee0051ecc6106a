// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package redactor

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/sweep"
	"github.com/bitmark-inc/splice/taint"
)

const (
	defaultQueueSize = 100
	defaultBurst     = 1
)

// Runner - performs one sweep
type Runner interface {
	Run(ctx context.Context, label taint.Label) *sweep.Report
}

// Recorder - keeps finished reports
type Recorder interface {
	Record(*sweep.Report) error
}

// Configuration - request handling limits
type Configuration struct {
	QueueSize int     `gluamapper:"queue_size" json:"queue_size"`
	Rate      float64 `gluamapper:"rate" json:"rate"` // sweeps per second, <= 0 is unlimited
	Burst     int     `gluamapper:"burst" json:"burst"`
}

// Request - one deletion request
type Request struct {
	Label  taint.Label
	Source string
}

// Redactor - the request queue and its worker
type Redactor struct {
	log      *logger.L
	runner   Runner
	recorder Recorder
	limiter  *rate.Limiter
	queue    chan Request
}

// New - create a redactor, recorder may be nil
func New(configuration Configuration, runner Runner, recorder Recorder) *Redactor {
	size := configuration.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	limit := rate.Inf
	if configuration.Rate > 0 {
		limit = rate.Limit(configuration.Rate)
	}
	burst := configuration.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	return &Redactor{
		log:      logger.New("redactor"),
		runner:   runner,
		recorder: recorder,
		limiter:  rate.NewLimiter(limit, burst),
		queue:    make(chan Request, size),
	}
}

// Submit - queue a request without blocking
//
// fails with fault.ErrQueueFull when the queue is full
func (r *Redactor) Submit(label taint.Label, source string) error {
	if label.IsEmpty() {
		return fault.ErrInvalidLabel
	}
	select {
	case r.queue <- Request{Label: label, Source: source}:
		r.log.Debugf("queued label: %s  from: %s", label, source)
		return nil
	default:
		r.log.Warnf("queue full, rejected label: %s  from: %s", label, source)
		return fault.ErrQueueFull
	}
}

// Pending - number of queued requests
func (r *Redactor) Pending() int {
	return len(r.queue)
}

// Run - background process: sweep each queued request, see
// background.Process
func (r *Redactor) Run(args interface{}, shutdown <-chan struct{}) {
	r.log.Info("starting…")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case req := <-r.queue:
			if !r.wait(shutdown) {
				break loop
			}
			r.process(ctx, req)
		}
	}

	r.log.Info("stopped")
}

func (r *Redactor) process(ctx context.Context, req Request) {
	r.log.Infof("sweep label: %s  from: %s", req.Label, req.Source)

	report := r.runner.Run(ctx, req.Label)
	if err := report.Err(); nil != err {
		r.log.Warnf("sweep: %s  errors: %s", report.ID, err)
	}

	if nil == r.recorder {
		return
	}
	err := r.recorder.Record(report)
	if nil != err {
		r.log.Errorf("record sweep: %s  error: %s", report.ID, err)
	}
}

// hold a request back until the limiter allows it, false if shutdown
// happened first
func (r *Redactor) wait(shutdown <-chan struct{}) bool {
	reservation := r.limiter.Reserve()
	if !reservation.OK() {
		r.log.Errorf("rate limiting: %s", fault.ErrRateLimiting)
		return true
	}
	delay := reservation.Delay()
	if delay <= 0 {
		return true
	}
	r.log.Debugf("rate limited for: %s", delay)

	select {
	case <-shutdown:
		reservation.Cancel()
		return false
	case <-time.After(delay):
		return true
	}
}
