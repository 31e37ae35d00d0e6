// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads the updater's configuration from environment
// variables. Everything is optional except the Cloudflare API token
// and the domain list, and those are only required for record
// updates, not for plain IP discovery.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ljgonzalez1/cloudflare-ddns/ipsource"
	"github.com/ljgonzalez1/cloudflare-ddns/retry"
)

// Environment variable names.
const (
	EnvAPIKey         = "CLOUDFLARE_API_KEY"
	EnvZoneID         = "ZONE_ID"
	EnvDomains        = "DOMAINS"
	EnvProxied        = "PROXIED"
	EnvTTL            = "TTL"
	EnvIPEndpoints    = "IP_ENDPOINTS"
	EnvMaxAttempts    = "MAX_ATTEMPTS"
	EnvAttemptTimeout = "ATTEMPT_TIMEOUT"
	EnvRetryDelay     = "RETRY_DELAY"
)

// API token sanity bounds. Cloudflare tokens are 40 characters, but
// only gross violations are rejected so test tokens keep working.
const (
	minAPIKeyLength = 10
	maxAPIKeyLength = 256
)

// maxDomainLength is the DNS limit on a fully qualified name.
const maxDomainLength = 253

// A Config holds everything the updater reads from the environment.
type Config struct {
	// APIKey is the Cloudflare API token (CLOUDFLARE_API_KEY).
	APIKey string
	// ZoneID is the Cloudflare zone identifier (ZONE_ID). When empty,
	// the updater resolves it from the first domain's registrable
	// suffix.
	ZoneID string
	// Domains are the fully qualified record names to keep pointed at
	// the current public IP (DOMAINS, comma-separated).
	Domains []string
	// Proxied sets the Cloudflare proxy flag on updated records
	// (PROXIED).
	Proxied bool
	// TTL is the record TTL in seconds; 1 means automatic (TTL).
	TTL int
	// Endpoints are the public-IP endpoints to race (IP_ENDPOINTS,
	// comma-separated). Empty means ipsource.DefaultEndpoints.
	Endpoints []string
	// MaxAttempts, AttemptTimeout and RetryDelay tune the per-worker
	// retry policy (MAX_ATTEMPTS, ATTEMPT_TIMEOUT, RETRY_DELAY).
	MaxAttempts    int
	AttemptTimeout time.Duration
	RetryDelay     time.Duration
}

// Load reads the configuration from the process environment. It does
// not validate; call Validate before using the result for record
// updates.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(EnvTTL, 1)
	v.SetDefault(EnvMaxAttempts, retry.DefaultMaxAttempts)
	v.SetDefault(EnvAttemptTimeout, retry.DefaultAttemptTimeout)
	v.SetDefault(EnvRetryDelay, retry.DefaultRetryDelay)

	return &Config{
		APIKey:         strings.TrimSpace(v.GetString(EnvAPIKey)),
		ZoneID:         strings.TrimSpace(v.GetString(EnvZoneID)),
		Domains:        SplitList(v.GetString(EnvDomains)),
		Proxied:        IsTrue(v.GetString(EnvProxied)),
		TTL:            v.GetInt(EnvTTL),
		Endpoints:      SplitList(v.GetString(EnvIPEndpoints)),
		MaxAttempts:    v.GetInt(EnvMaxAttempts),
		AttemptTimeout: v.GetDuration(EnvAttemptTimeout),
		RetryDelay:     v.GetDuration(EnvRetryDelay),
	}
}

// Validate reports every configuration problem that would prevent a
// record update, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	switch {
	case c.APIKey == "":
		errs = append(errs, fmt.Errorf("%s is required", EnvAPIKey))
	case len(c.APIKey) < minAPIKeyLength:
		errs = append(errs, fmt.Errorf("%s is too short (minimum %d characters)", EnvAPIKey, minAPIKeyLength))
	case len(c.APIKey) > maxAPIKeyLength:
		errs = append(errs, fmt.Errorf("%s is too long (maximum %d characters)", EnvAPIKey, maxAPIKeyLength))
	}
	if len(c.Domains) == 0 {
		errs = append(errs, fmt.Errorf("%s must name at least one domain", EnvDomains))
	}
	for _, domain := range c.Domains {
		if len(domain) > maxDomainLength {
			errs = append(errs, fmt.Errorf("domain exceeds %d characters: %s", maxDomainLength, domain))
		}
	}
	return errors.Join(errs...)
}

// RaceEndpoints returns the configured public-IP endpoints, falling
// back to the built-in default set.
func (c *Config) RaceEndpoints() []string {
	if len(c.Endpoints) > 0 {
		return c.Endpoints
	}
	return ipsource.DefaultEndpoints
}

// RetryPolicy returns the per-worker retry policy described by the
// configuration.
func (c *Config) RetryPolicy() retry.Policy {
	p := retry.Policy{
		MaxAttempts:    c.MaxAttempts,
		AttemptTimeout: c.AttemptTimeout,
	}
	if c.RetryDelay > 0 {
		p.Backoff = retry.NewFixedWaiter(c.RetryDelay)
	}
	return p.Normalize()
}

// IsTrue reports whether the first whitespace-delimited token of s is
// one of the accepted truthy spellings: "true", "True", or "1".
// Anything else, including the empty string, is false.
func IsTrue(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "true", "True", "1":
		return true
	}
	return false
}

// SplitList splits a comma-separated list, trimming whitespace around
// each element and dropping empty ones.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
