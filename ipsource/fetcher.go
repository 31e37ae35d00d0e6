// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ipsource

import (
	"context"
	"fmt"
	"strings"
)

// DefaultEndpoints is the built-in candidate set raced when the user
// does not configure their own: a mix of well-known HTTP services and
// resolver tricks, so a single misbehaving provider never blocks an
// update.
var DefaultEndpoints = []string{
	"https://api.ipify.org/",
	"https://ipv4.icanhazip.com/",
	"https://icanhazip.com/",
	"https://checkip.amazonaws.com/",
	"dns://resolver1.opendns.com/myip.opendns.com",
	"dns://one.one.one.one/whoami.cloudflare",
}

// A Fetcher routes fetches to the HTTP or DNS fetcher based on the
// endpoint's scheme. It implements the race core's fetcher contract
// and is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	HTTP *HTTPFetcher
	DNS  *DNSFetcher
}

// New returns a Fetcher covering both endpoint families, with the
// shared HTTP client and a plain UDP DNS client.
func New() *Fetcher {
	return &Fetcher{
		HTTP: &HTTPFetcher{},
		DNS:  &DNSFetcher{},
	}
}

// Fetch dispatches on the endpoint scheme: http:// and https:// go to
// the HTTP fetcher, dns:// to the DNS fetcher. Anything else is an
// error (and therefore, from the race core's perspective, a retryable
// fetch failure).
func (f *Fetcher) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	switch {
	case strings.HasPrefix(endpoint, "http://"), strings.HasPrefix(endpoint, "https://"):
		if f.HTTP == nil {
			return nil, fmt.Errorf("ipsource: no HTTP fetcher configured for %s", endpoint)
		}
		return f.HTTP.Fetch(ctx, endpoint)
	case strings.HasPrefix(endpoint, "dns://"):
		if f.DNS == nil {
			return nil, fmt.Errorf("ipsource: no DNS fetcher configured for %s", endpoint)
		}
		return f.DNS.Fetch(ctx, endpoint)
	default:
		return nil, fmt.Errorf("ipsource: unsupported endpoint scheme: %s", endpoint)
	}
}
