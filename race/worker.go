// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package race

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ljgonzalez1/cloudflare-ddns/retry"
)

// Status is the state of a single race worker. A worker starts Running
// and ends in exactly one of the terminal states Succeeded, Exhausted,
// or Stopped.
type Status int32

const (
	// Running means the worker's attempt loop has not yet exited.
	Running Status = iota
	// Succeeded means the worker produced the candidate that won the
	// race.
	Succeeded
	// Exhausted means the worker used all its attempts without ever
	// producing a valid candidate.
	Exhausted
	// Stopped means the worker exited early because another worker had
	// already won. Losing the claim after producing a candidate is
	// benign and also ends in Stopped.
	Stopped
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Exhausted:
		return "exhausted"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Terminal reports whether s is one of the terminal worker states.
func (s Status) Terminal() bool {
	return s != Running
}

// A worker makes repeated attempts to produce a candidate value from
// one endpoint. Its descriptor fields (id, endpoint, policy) are
// read-only after launch; status and finished are written by the
// worker itself and read by the pool.
type worker[T any] struct {
	id       int
	endpoint string
	policy   retry.Policy
	state    *State[T]
	fetch    Fetcher
	extract  Extractor[T]
	sleep    func(ctx context.Context, d time.Duration) bool
	log      *zap.Logger

	status   atomic.Int32
	finished atomic.Bool
}

// run is the worker's attempt loop. It always leaves the worker in a
// terminal state with finished set, including when fetch or extract
// panics (the worker is then marked Exhausted and the race continues
// on the remaining workers).
func (w *worker[T]) run(ctx context.Context) {
	defer w.finished.Store(true)
	defer func() {
		if r := recover(); r != nil {
			w.setStatus(Exhausted)
			w.log.Error("worker panicked, treating as exhausted",
				zap.String("endpoint", w.endpoint),
				zap.Any("panic", r))
		}
	}()

	w.log.Info("starting worker", zap.String("endpoint", w.endpoint))

	for attempt := 1; attempt <= w.policy.MaxAttempts; attempt++ {
		if w.state.Done() {
			w.setStatus(Stopped)
			w.log.Info("another worker won, stopping",
				zap.String("endpoint", w.endpoint))
			return
		}
		if ctx.Err() != nil {
			w.setStatus(Stopped)
			w.log.Info("race cancelled, stopping",
				zap.String("endpoint", w.endpoint))
			return
		}

		w.log.Info("attempt",
			zap.String("endpoint", w.endpoint),
			zap.Int("attempt", attempt),
			zap.Int("max", w.policy.MaxAttempts))

		if candidate, ok := w.attempt(ctx); ok {
			if w.state.TryClaim(w.id, candidate) {
				w.setStatus(Succeeded)
				w.log.Info("won the race",
					zap.String("endpoint", w.endpoint),
					zap.Any("candidate", candidate))
				return
			}
			// Losing the claim is benign: the candidate is simply
			// dropped.
			w.setStatus(Stopped)
			w.log.Info("candidate found but someone else already won",
				zap.String("endpoint", w.endpoint))
			return
		}

		if attempt == w.policy.MaxAttempts {
			break
		}
		if w.state.Done() {
			w.setStatus(Stopped)
			w.log.Info("another worker won, stopping",
				zap.String("endpoint", w.endpoint))
			return
		}

		delay := w.policy.Delay(attempt)
		w.log.Info("retrying",
			zap.String("endpoint", w.endpoint),
			zap.Duration("delay", delay))
		if !w.sleep(ctx, delay) {
			w.setStatus(Stopped)
			return
		}
	}

	w.setStatus(Exhausted)
	w.log.Warn("all attempts failed", zap.String("endpoint", w.endpoint))
}

// attempt performs one fetch+extract cycle under the policy's attempt
// timeout. A transport failure and a fetch that yields no valid
// candidate are equivalent: both put the worker on the retry path.
func (w *worker[T]) attempt(ctx context.Context) (T, bool) {
	attemptCtx, cancel := context.WithTimeout(ctx, w.policy.AttemptTimeout)
	defer cancel()

	body, err := w.fetch.Fetch(attemptCtx, w.endpoint)
	if err != nil {
		w.log.Warn("fetch failed",
			zap.String("endpoint", w.endpoint),
			zap.Error(err))
		var zero T
		return zero, false
	}

	candidate, ok := w.extract.Extract(body)
	if !ok {
		w.log.Warn("no valid candidate in response",
			zap.String("endpoint", w.endpoint))
		var zero T
		return zero, false
	}
	return candidate, true
}

func (w *worker[T]) setStatus(s Status) {
	w.status.Store(int32(s))
}

// Status returns the worker's current state. It may be read
// concurrently with the worker's own loop.
func (w *worker[T]) Status() Status {
	return Status(w.status.Load())
}

// ctxSleep waits for d or until ctx is cancelled. It returns false if
// the context was cancelled before the full wait elapsed.
func ctxSleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
