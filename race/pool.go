// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package race

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ljgonzalez1/cloudflare-ddns/retry"
)

// pollInterval is how often the pool re-checks the shared race state
// while waiting for a winner or for every worker to finish. Detection
// of either condition lags real time by at most one interval.
const pollInterval = 5 * time.Millisecond

// A Pool races one retrying worker per candidate endpoint and returns
// the first valid result. The zero value is not usable: Fetcher and
// Extractor must be set. Policy and Logger are optional.
//
// A Pool holds no per-race state and is safe for concurrent use by
// multiple goroutines; each call to Race owns its workers and shared
// state for the duration of that call only.
type Pool[T any] struct {
	// Fetcher retrieves raw response data from an endpoint.
	Fetcher Fetcher
	// Extractor produces a candidate value from raw response data.
	Extractor Extractor[T]
	// Policy is the retry policy every worker follows. Zero-value
	// fields are normalized to retry.DefaultPolicy's settings.
	Policy retry.Policy
	// Logger receives worker and pool progress logs. If nil, logging
	// is disabled.
	Logger *zap.Logger

	// sleep implements the inter-attempt wait. Tests may replace it;
	// nil means a context-aware real-time sleep.
	sleep func(ctx context.Context, d time.Duration) bool
}

// A WorkerState describes the terminal state of one worker after a
// race, for diagnostics and tests.
type WorkerState struct {
	ID       int
	Endpoint string
	Status   Status
}

// A Result carries the outcome of one race invocation.
type Result[T any] struct {
	// Value is the winning candidate. It is the zero value of T when
	// OK is false.
	Value T
	// OK reports whether any worker won the race.
	OK bool
	// WinnerID is the identifier (1..N, in endpoint order) of the
	// winning worker, or zero when OK is false. Diagnostic only.
	WinnerID int
	// Workers holds the terminal state of every launched worker.
	Workers []WorkerState
}

// Race races the endpoints and returns the first valid candidate
// value. The second return value is false if every worker exhausted
// its attempts without producing a candidate, or if endpoints is
// empty.
//
// Race blocks until every launched worker has reached a terminal
// state, so no goroutine started by Race outlives the call.
func (p *Pool[T]) Race(ctx context.Context, endpoints []string) (T, bool) {
	r := p.RaceResult(ctx, endpoints)
	return r.Value, r.OK
}

// RaceResult is like Race but additionally reports the winning worker
// and the terminal state of every worker.
func (p *Pool[T]) RaceResult(ctx context.Context, endpoints []string) Result[T] {
	if p.Fetcher == nil {
		panic("race: Pool requires a Fetcher")
	}
	if p.Extractor == nil {
		panic("race: Pool requires an Extractor")
	}

	if len(endpoints) == 0 {
		return Result[T]{}
	}

	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	policy := p.Policy.Normalize()
	sleep := p.sleep
	if sleep == nil {
		sleep = ctxSleep
	}

	state := NewState[T]()
	workers := make([]*worker[T], len(endpoints))

	log.Info("starting race", zap.Int("endpoints", len(endpoints)))

	var wg sync.WaitGroup
	for i, endpoint := range endpoints {
		w := &worker[T]{
			id:       i + 1,
			endpoint: endpoint,
			policy:   policy,
			state:    state,
			fetch:    p.Fetcher,
			extract:  p.Extractor,
			sleep:    sleep,
			log:      log,
		}
		workers[i] = w
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run(ctx)
		}()
	}

	p.await(ctx, state, workers)

	// Cooperative wind-down: stragglers observe the done flag at their
	// next loop boundary. The pool still joins every worker before
	// returning, so return latency is bounded by the slowest in-flight
	// attempt.
	wg.Wait()

	r := Result[T]{
		Workers: make([]WorkerState, len(workers)),
	}
	for i, w := range workers {
		r.Workers[i] = WorkerState{
			ID:       w.id,
			Endpoint: w.endpoint,
			Status:   w.Status(),
		}
	}
	if value, winnerID, ok := state.Winner(); ok {
		r.Value = value
		r.OK = true
		r.WinnerID = winnerID
		log.Info("race won",
			zap.Int("worker", winnerID),
			zap.Any("value", value))
	} else {
		log.Warn("race lost, every worker exhausted")
	}
	return r
}

// await polls the shared state until a winner exists, every worker has
// reached a terminal state, or the caller's context is cancelled.
// Polling (rather than blocking on the claim) lets the pool also
// detect the degenerate all-exhausted case with no winner.
func (p *Pool[T]) await(ctx context.Context, state *State[T], workers []*worker[T]) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if state.Done() || allFinished(workers) {
			return
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func allFinished[T any](workers []*worker[T]) bool {
	for _, w := range workers {
		if !w.finished.Load() {
			return false
		}
	}
	return true
}
