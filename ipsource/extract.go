// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ipsource

import "strings"

// IsIPv4 reports whether s is a strictly formatted dotted-quad IPv4
// address: exactly four segments of one to three digits each, every
// segment in the range 0-255, nothing else. Leading zeros are
// tolerated ("010.1.1.1" is accepted as 10.1.1.1 would be by most
// resolvers).
func IsIPv4(s string) bool {
	if len(s) < 7 || len(s) > 15 {
		return false
	}
	segments := strings.Split(s, ".")
	if len(segments) != 4 {
		return false
	}
	for _, segment := range segments {
		if len(segment) == 0 || len(segment) > 3 {
			return false
		}
		n := 0
		for i := 0; i < len(segment); i++ {
			c := segment[i]
			if c < '0' || c > '9' {
				return false
			}
			n = n*10 + int(c-'0')
		}
		if n > 255 {
			return false
		}
	}
	return true
}

// ExtractIPv4 scans raw response text for the first substring that is
// a valid IPv4 address and returns it. Responses from public IP
// services range from a bare address to address-plus-whitespace to
// full HTML pages, so the scan tolerates arbitrary surrounding noise,
// including stray dots glued to the address.
//
// The second return value is false if no valid address was found.
func ExtractIPv4(raw []byte) (string, bool) {
	s := string(raw)
	i := 0
	for i < len(s) {
		for i < len(s) && !isDigit(s[i]) {
			i++
		}
		if i == len(s) {
			break
		}
		j := i
		for j < len(s) && (isDigit(s[j]) || s[j] == '.') {
			j++
		}
		candidate := strings.Trim(s[i:j], ".")
		if IsIPv4(candidate) {
			return candidate, true
		}
		i = j + 1
	}
	return "", false
}

// Extractor adapts ExtractIPv4 to the race core's extractor contract.
type Extractor struct{}

// Extract returns the first valid IPv4 address in body, if any.
func (Extractor) Extract(body []byte) (string, bool) {
	return ExtractIPv4(body)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
