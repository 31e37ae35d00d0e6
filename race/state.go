// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package race

import (
	"sync"
	"sync/atomic"
)

// State is the shared state of one race: a done flag, the winning
// candidate, and the identifier of the worker that claimed it. A State
// is created when a race begins, shared by reference between the pool
// and every worker, and discarded when the race ends. It is never
// reused across races.
//
// State is safe for concurrent use by multiple goroutines. Once Done
// reports true, the winner is immutable for the remainder of the
// State's lifetime and is never observed partially written.
type State[T any] struct {
	done     atomic.Bool
	lock     sync.Mutex
	winner   T
	winnerID int
}

// NewState returns the shared state for a new race.
func NewState[T any]() *State[T] {
	return &State[T]{}
}

// TryClaim atomically registers candidate as the race winner. It
// returns true if the claim succeeded, meaning the caller won the
// race. If another worker already claimed the win, TryClaim returns
// false and the candidate is discarded.
//
// Across any number of concurrent calls, exactly one returns true.
func (s *State[T]) TryClaim(workerID int, candidate T) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.done.Load() {
		return false
	}
	s.winner = candidate
	s.winnerID = workerID
	s.done.Store(true)
	return true
}

// Done reports whether a winner has been claimed. It is a fast-path
// read and does not block: workers call it between attempts to avoid
// wasted work once the race is decided.
func (s *State[T]) Done() bool {
	return s.done.Load()
}

// Winner returns the winning candidate and the identifier of the
// worker that claimed it. The boolean result is false if no winner has
// been claimed yet.
func (s *State[T]) Winner() (T, int, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if !s.done.Load() {
		var zero T
		return zero, 0, false
	}
	return s.winner, s.winnerID, true
}
