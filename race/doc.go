// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package race resolves a single authoritative value by racing several
independent, retrying workers against different candidate endpoints in
parallel, accepting the first valid result and discarding the rest.

One worker is launched per endpoint. Each worker repeatedly fetches raw
data from its endpoint and tries to extract a candidate value from it,
following a retry policy from package retry. The first worker to
produce a valid candidate claims the win; the claim is atomic, so
exactly one candidate is ever stored no matter how many workers
complete simultaneously. The remaining workers observe the claim at
their next loop boundary and wind down cooperatively — an attempt
already in flight is allowed to finish naturally, never interrupted.

The pool joins every worker before returning, so no goroutine outlives
a call to Race. The cost of that guarantee is that return latency is
bounded by the slowest in-flight attempt among the losing workers.

Typical use:

	pool := &race.Pool[string]{
		Fetcher:   fetcher,   // race.Fetcher
		Extractor: extractor, // race.Extractor[string]
	}
	value, ok := pool.Race(ctx, endpoints)

The mechanics of fetching (transport, TLS) and extraction (parsing,
validation) are collaborator concerns supplied through the Fetcher and
Extractor interfaces; package ipsource provides implementations for
public IP discovery.
*/
package race
