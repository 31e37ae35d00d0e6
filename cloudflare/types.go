// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cloudflare

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrZoneNotFound is returned by Client.ZoneIDByName when the account
// owns no zone with the requested name.
var ErrZoneNotFound = errors.New("cloudflare: zone not found")

// A Zone is the subset of Cloudflare's zone object this client needs.
type Zone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// A Record is a DNS record in a Cloudflare zone. TTL 1 means
// "automatic" in the Cloudflare API.
type Record struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl,omitempty"`
	Proxied bool   `json:"proxied"`
}

// envelope is the wrapper Cloudflare puts around every v4 API
// response.
type envelope struct {
	Success bool            `json:"success"`
	Errors  []ErrorDetail   `json:"errors"`
	Result  json.RawMessage `json:"result"`
}

// An ErrorDetail is one error entry from a Cloudflare API response
// envelope.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// An APIError is a Cloudflare API call that completed at the HTTP
// level but was rejected by the API.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Errors holds the error entries from the response envelope, when
	// the body could be decoded.
	Errors []ErrorDetail
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("cloudflare: API returned status %d", e.StatusCode)
	}
	details := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		details[i] = fmt.Sprintf("%d: %s", d.Code, d.Message)
	}
	return fmt.Sprintf("cloudflare: API returned status %d (%s)", e.StatusCode, strings.Join(details, "; "))
}
