// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ipsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIPv4(t *testing.T) {
	valid := []string{
		"0.0.0.0",
		"1.2.3.4",
		"203.0.113.7",
		"255.255.255.255",
		"010.1.1.1",
	}
	for _, s := range valid {
		assert.True(t, IsIPv4(s), s)
	}

	invalid := []string{
		"",
		"1.2.3",
		"1.2.3.4.5",
		"256.1.1.1",
		"1.2.3.999",
		"1..2.3",
		".1.2.3.4",
		"1.2.3.4.",
		"1.2.3.a",
		"1234.1.1.1",
		"203.0.113.700",
		"203 0 113 7",
		"999999999999999999",
	}
	for _, s := range invalid {
		assert.False(t, IsIPv4(s), s)
	}
}

func TestExtractIPv4(t *testing.T) {
	testCases := []struct {
		name  string
		raw   string
		ip    string
		found bool
	}{
		{"bare", "203.0.113.7", "203.0.113.7", true},
		{"trailing newline", "203.0.113.7\n", "203.0.113.7", true},
		{"surrounding whitespace", "  198.51.100.24 \r\n", "198.51.100.24", true},
		{"html wrapper", "<html><body>Your IP: 192.0.2.44</body></html>", "192.0.2.44", true},
		{"stray dots", "..203.0.113.7..", "203.0.113.7", true},
		{"first of several", "10.0.0.1 then 10.0.0.2", "10.0.0.1", true},
		{"skips invalid run", "999.999.999.999 but 10.0.0.9 works", "10.0.0.9", true},
		{"version number noise", "v1.2 build 7 at 172.16.0.3", "172.16.0.3", true},
		{"empty", "", "", false},
		{"no digits", "no address here", "", false},
		{"only invalid", "300.300.300.300 and 1.2.3", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ip, found := ExtractIPv4([]byte(tc.raw))
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.ip, ip)
		})
	}
}

func TestExtractor(t *testing.T) {
	var x Extractor
	ip, ok := x.Extract([]byte("address 203.0.113.7\n"))
	assert.True(t, ok)
	assert.Equal(t, "203.0.113.7", ip)
	_, ok = x.Extract(nil)
	assert.False(t, ok)
}
