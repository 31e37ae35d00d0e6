// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package cloudflare is a minimal client for the parts of the Cloudflare
v4 API a dynamic DNS updater needs: resolving a zone identifier from a
zone name, and creating or updating A records.

Transient failures (network errors, 429, 5xx) are retried with
exponential backoff; API-level rejections are returned as *APIError
without retrying.
*/
package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/ljgonzalez1/cloudflare-ddns/transient"
)

// DefaultBaseURL is the production endpoint of the Cloudflare v4 API.
const DefaultBaseURL = "https://api.cloudflare.com/client/v4"

// maxAPIResponseSize caps how much of an API response body is read.
const maxAPIResponseSize = 1 << 20

// An HTTPDoer implements a Do method in the same manner as the
// standard library http.Client.
type HTTPDoer interface {
	Do(r *http.Request) (*http.Response, error)
}

// A Client calls the Cloudflare v4 API with Bearer-token
// authentication. APIToken is required; every other field has a
// usable zero value.
//
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	// APIToken authenticates every request, as a Bearer token.
	APIToken string
	// BaseURL overrides the API endpoint. If empty, DefaultBaseURL is
	// used.
	BaseURL string
	// HTTPDoer sends the HTTP requests. If nil, http.DefaultClient is
	// used.
	HTTPDoer HTTPDoer
	// NewBackOff returns the backoff schedule used for retrying one
	// API call. If nil, an exponential schedule capped at 30 seconds
	// of total elapsed time is used.
	NewBackOff func() backoff.BackOff
	// Logger receives API call logs. If nil, logging is disabled.
	Logger *zap.Logger
}

// ZoneIDByName returns the identifier of the zone with the given name.
// The returned error wraps ErrZoneNotFound when the account owns no
// such zone.
func (c *Client) ZoneIDByName(ctx context.Context, name string) (string, error) {
	var zones []Zone
	query := url.Values{"name": []string{name}}
	if err := c.do(ctx, http.MethodGet, "/zones", query, nil, &zones); err != nil {
		return "", err
	}
	if len(zones) == 0 {
		return "", fmt.Errorf("%w: %s", ErrZoneNotFound, name)
	}
	return zones[0].ID, nil
}

// DNSRecords lists the records in a zone matching the given type and
// name. An empty rtype or name matches everything.
func (c *Client) DNSRecords(ctx context.Context, zoneID, rtype, name string) ([]Record, error) {
	query := url.Values{}
	if rtype != "" {
		query.Set("type", rtype)
	}
	if name != "" {
		query.Set("name", name)
	}
	var records []Record
	path := fmt.Sprintf("/zones/%s/dns_records", zoneID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateDNSRecord creates a record in the zone and returns it as
// stored, including the assigned identifier.
func (c *Client) CreateDNSRecord(ctx context.Context, zoneID string, r Record) (Record, error) {
	var created Record
	path := fmt.Sprintf("/zones/%s/dns_records", zoneID)
	if err := c.do(ctx, http.MethodPost, path, nil, r, &created); err != nil {
		return Record{}, err
	}
	return created, nil
}

// UpdateDNSRecord overwrites the record with the given identifier and
// returns it as stored.
func (c *Client) UpdateDNSRecord(ctx context.Context, zoneID, recordID string, r Record) (Record, error) {
	var updated Record
	path := fmt.Sprintf("/zones/%s/dns_records/%s", zoneID, recordID)
	if err := c.do(ctx, http.MethodPut, path, nil, r, &updated); err != nil {
		return Record{}, err
	}
	return updated, nil
}

// UpsertARecord points the A record for fqdn at ip, creating the
// record if it does not exist and leaving it untouched if it already
// has the desired content. A ttl of zero or less means automatic
// (TTL 1 in API terms).
func (c *Client) UpsertARecord(ctx context.Context, zoneID, fqdn, ip string, proxied bool, ttl int) (Record, error) {
	if ttl <= 0 {
		ttl = 1
	}
	desired := Record{
		Type:    "A",
		Name:    fqdn,
		Content: ip,
		TTL:     ttl,
		Proxied: proxied,
	}

	existing, err := c.DNSRecords(ctx, zoneID, "A", fqdn)
	if err != nil {
		return Record{}, err
	}
	log := c.logger()

	if len(existing) == 0 {
		created, err := c.CreateDNSRecord(ctx, zoneID, desired)
		if err != nil {
			return Record{}, err
		}
		log.Info("created A record",
			zap.String("name", fqdn),
			zap.String("content", ip))
		return created, nil
	}

	current := existing[0]
	if current.Content == ip && current.Proxied == proxied && current.TTL == ttl {
		log.Info("A record already up to date",
			zap.String("name", fqdn),
			zap.String("content", ip))
		return current, nil
	}

	updated, err := c.UpdateDNSRecord(ctx, zoneID, current.ID, desired)
	if err != nil {
		return Record{}, err
	}
	log.Info("updated A record",
		zap.String("name", fqdn),
		zap.String("previous", current.Content),
		zap.String("content", ip))
	return updated, nil
}

// do performs one API call, retrying transient failures under the
// client's backoff schedule. On success the envelope's result is
// decoded into out (which may be nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("cloudflare: encoding %s %s: %w", method, path, err)
		}
	}

	endpoint := c.baseURL() + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.APIToken)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.doer().Do(req)
		if err != nil {
			if transient.Categorize(err) == transient.Not && ctx.Err() == nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseSize))
		if err != nil {
			return err
		}

		var env envelope
		decodable := json.Unmarshal(raw, &env) == nil

		// Rate limiting and server-side trouble are worth retrying;
		// everything else the API rejects is final.
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return &APIError{StatusCode: resp.StatusCode, Errors: env.Errors}
		}
		if resp.StatusCode >= 400 || (decodable && !env.Success) {
			return backoff.Permanent(&APIError{StatusCode: resp.StatusCode, Errors: env.Errors})
		}
		if !decodable {
			return backoff.Permanent(fmt.Errorf("cloudflare: undecodable response to %s %s", method, path))
		}

		if out != nil {
			if err := json.Unmarshal(env.Result, out); err != nil {
				return backoff.Permanent(fmt.Errorf("cloudflare: decoding %s %s result: %w", method, path, err))
			}
		}
		return nil
	}

	c.logger().Debug("API call", zap.String("method", method), zap.String("path", path))
	return backoff.Retry(operation, backoff.WithContext(c.newBackOff(), ctx))
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}
	return c.HTTPDoer
}

func (c *Client) newBackOff() backoff.BackOff {
	if c.NewBackOff != nil {
		return c.NewBackOff()
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second
	return b
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
