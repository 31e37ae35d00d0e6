// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import "time"

// Default policy settings, applied by Policy.Normalize wherever a
// Policy field is left at its zero value.
const (
	DefaultMaxAttempts    = 5
	DefaultAttemptTimeout = 15 * time.Second
	DefaultRetryDelay     = 3 * time.Second
)

// DefaultPolicy is a general-purpose retry policy suitable for common
// use cases: up to 5 attempts per endpoint, a 15 second timeout on
// each attempt, and a fixed 3 second wait between attempts.
var DefaultPolicy = Policy{
	MaxAttempts:    DefaultMaxAttempts,
	AttemptTimeout: DefaultAttemptTimeout,
	Backoff:        NewFixedWaiter(DefaultRetryDelay),
}

// A Policy controls how a race worker retries failed attempts to
// produce a candidate value from its endpoint.
//
// Policy is a value type. Copies are independent and a single Policy
// may be shared by any number of workers, provided the Backoff waiter
// is safe for concurrent use (all waiters built by this package are).
type Policy struct {
	// MaxAttempts is the maximum number of attempts a worker makes
	// against its endpoint before giving up.
	//
	// If MaxAttempts is zero or negative, DefaultMaxAttempts is used.
	MaxAttempts int
	// AttemptTimeout bounds the duration of a single fetch attempt.
	//
	// If AttemptTimeout is zero or negative, DefaultAttemptTimeout is
	// used.
	AttemptTimeout time.Duration
	// Backoff decides how long a worker waits after a failed attempt
	// before starting the next one.
	//
	// If Backoff is nil, a fixed DefaultRetryDelay wait is used.
	Backoff Waiter
}

// Normalize returns a copy of p with zero-value fields replaced by the
// corresponding DefaultPolicy settings. The receiver is not modified.
func (p Policy) Normalize() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.AttemptTimeout <= 0 {
		p.AttemptTimeout = DefaultAttemptTimeout
	}
	if p.Backoff == nil {
		p.Backoff = NewFixedWaiter(DefaultRetryDelay)
	}
	return p
}

// Delay returns the wait duration after the given failed attempt.
// Attempts are numbered starting at 1.
func (p Policy) Delay(attempt int) time.Duration {
	if p.Backoff == nil {
		return DefaultRetryDelay
	}
	return p.Backoff.Wait(attempt)
}
