// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ipsource

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/http2"
)

// maxResponseSize caps how much of a response body is read. Public IP
// services answer in a few bytes; anything larger is noise.
const maxResponseSize = 64 * 1024

// An HTTPFetcher retrieves response bodies from http:// and https://
// endpoints with a single GET per fetch. It implements the race
// core's fetcher contract.
//
// HTTPFetcher is safe for concurrent use by multiple goroutines.
type HTTPFetcher struct {
	// Client is used to execute requests. If nil, a shared client
	// with an HTTP/2-enabled transport is used. Per-attempt deadlines
	// come from the fetch context, so Client.Timeout is normally left
	// unset.
	Client *http.Client
}

var (
	defaultClientOnce sync.Once
	defaultClient     *http.Client
)

func sharedClient() *http.Client {
	defaultClientOnce.Do(func() {
		transport := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		}
		// The stock transport only negotiates h2 when it owns its TLS
		// config, so opt in explicitly.
		_ = http2.ConfigureTransport(transport)
		defaultClient = &http.Client{Transport: transport}
	})
	return defaultClient
}

// Fetch issues a GET to endpoint and returns the buffered response
// body. A non-2xx status is a fetch failure. The context bounds the
// whole exchange, including reading the body.
func (f *HTTPFetcher) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ipsource: %s returned status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (f *HTTPFetcher) client() *http.Client {
	if f.Client == nil {
		return sharedClient()
	}
	return f.Client
}
