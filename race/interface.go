// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package race

import "context"

// A Fetcher retrieves raw response data from a candidate endpoint.
//
// The context passed to Fetch carries the per-attempt timeout set by
// the worker's retry policy; implementations must honor it. Every
// error returned by Fetch is treated as retryable by the race core.
//
// Implementations of Fetcher must be safe for concurrent use by
// multiple goroutines, since one fetch may be in flight per endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) ([]byte, error)
}

// The FetcherFunc type is an adapter to allow the use of ordinary
// functions as fetchers.
type FetcherFunc func(ctx context.Context, endpoint string) ([]byte, error)

// Fetch calls f(ctx, endpoint).
func (f FetcherFunc) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	return f(ctx, endpoint)
}

// An Extractor produces a validated candidate value from raw response
// data, or reports that none was found. A not-found result is treated
// identically to a fetch failure for retry purposes.
//
// Implementations of Extractor must be safe for concurrent use by
// multiple goroutines.
type Extractor[T any] interface {
	Extract(body []byte) (T, bool)
}

// The ExtractorFunc type is an adapter to allow the use of ordinary
// functions as extractors.
type ExtractorFunc[T any] func(body []byte) (T, bool)

// Extract calls f(body).
func (f ExtractorFunc[T]) Extract(body []byte) (T, bool) {
	return f(body)
}
