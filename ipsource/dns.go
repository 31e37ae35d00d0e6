// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ipsource

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/miekg/dns"
)

// whoamiCloudflare is answered by 1.1.1.1 with a CHAOS-class TXT
// record containing the caller's address; every other qname is assumed
// to be a regular A lookup (e.g. myip.opendns.com against the OpenDNS
// resolvers).
const whoamiCloudflare = "whoami.cloudflare."

// A DNSFetcher retrieves the caller's public address from dns://
// endpoints of the form dns://resolver[:port]/qname by a direct
// exchange with the named resolver. It implements the race core's
// fetcher contract: the answer's address data is returned as the raw
// response text.
//
// DNSFetcher is safe for concurrent use by multiple goroutines.
type DNSFetcher struct {
	// Client is used for the DNS exchange. If nil, a plain UDP client
	// is used.
	Client *dns.Client
}

// Fetch queries the resolver named in endpoint and returns the answer
// text. The context bounds the whole exchange.
func (f *DNSFetcher) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	resolver, qname, err := parseDNSEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	m := new(dns.Msg)
	if qname == whoamiCloudflare {
		m.SetQuestion(qname, dns.TypeTXT)
		m.Question[0].Qclass = dns.ClassCHAOS
	} else {
		m.SetQuestion(qname, dns.TypeA)
	}

	client := f.Client
	if client == nil {
		client = &dns.Client{}
	}
	in, _, err := client.ExchangeContext(ctx, m, resolver)
	if err != nil {
		return nil, err
	}
	if in.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("ipsource: %s answered %s", endpoint, dns.RcodeToString[in.Rcode])
	}

	for _, rr := range in.Answer {
		switch rr := rr.(type) {
		case *dns.A:
			return []byte(rr.A.String()), nil
		case *dns.TXT:
			return []byte(strings.Join(rr.Txt, "")), nil
		}
	}
	return nil, fmt.Errorf("ipsource: %s returned no usable answer", endpoint)
}

// parseDNSEndpoint splits dns://resolver[:port]/qname into a resolver
// address (with the default port 53 applied) and a fully qualified
// query name.
func parseDNSEndpoint(endpoint string) (resolver, qname string, err error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "dns" {
		return "", "", fmt.Errorf("ipsource: not a dns endpoint: %s", endpoint)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("ipsource: missing resolver in %s", endpoint)
	}
	qname = strings.Trim(u.Path, "/")
	if qname == "" {
		return "", "", fmt.Errorf("ipsource: missing query name in %s", endpoint)
	}

	resolver = u.Host
	if _, _, splitErr := net.SplitHostPort(resolver); splitErr != nil {
		resolver = net.JoinHostPort(resolver, "53")
	}
	return resolver, dns.Fqdn(qname), nil
}
