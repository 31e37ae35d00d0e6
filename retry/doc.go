// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry defines the retry policy a race worker follows while
// trying to produce a candidate value from its endpoint: how many
// attempts it may make, how long each attempt may run, and how long to
// wait between attempts.
//
// A Policy is a plain value and is safe to share between any number of
// workers. The inter-attempt wait is pluggable through the Waiter
// interface, with constructors for the common cases:
//
//	p := retry.Policy{
//		MaxAttempts:    5,
//		AttemptTimeout: 15 * time.Second,
//		Backoff:        retry.NewFixedWaiter(3 * time.Second),
//	}
//
// The zero value of Policy is valid and normalizes to the settings of
// DefaultPolicy.
package retry
