// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies errors from downstream HTTP calls by
// whether a retry has any prospect of success. The Cloudflare client
// uses it to decide which failed API calls are worth backing off and
// retrying.
package transient

import (
	"errors"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize.
//
// The category Not means a retry after this error is very unlikely to
// succeed. Every other category means a retry has some prospect of
// success.
type Category int

const (
	// Not indicates any non-transient error.
	Not Category = iota
	// Timeout indicates a client-side timeout: the server may be
	// going through a temporary period of slowness. Categorize
	// returns Timeout if the error or any of its wrapped causes has a
	// Timeout() method that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection.
	// Refusal can be a permanent condition, but it also happens while
	// a service is restarting, so it is classified as transient.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// TCP connection, which commonly happens behind load balancers
	// and during rolling deploys, and tends to clear up on retry.
	ConnReset
)

// Categorize returns the transience category of the given error,
// looking through wrapped causes. A nil error, and any error that is
// not transient, produce Not.
//
// Categorize deliberately ignores the Temporary() convention, whose
// semantics are not consistent across the standard library.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
