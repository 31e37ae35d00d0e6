// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package ipsource discovers the machine's public IPv4 address. It
supplies the two collaborators the race core needs: fetchers that
retrieve raw response data from "what is my IP" endpoints, and an
extractor that finds the first strictly valid IPv4 address in a noisy
response body.

Two endpoint families are supported:

  - http:// and https:// endpoints, queried with a plain GET
    (api.ipify.org, icanhazip.com, checkip.amazonaws.com and friends);
  - dns:// endpoints of the form dns://resolver[:port]/qname, queried
    with a direct DNS exchange (resolver1.opendns.com answers an A
    query for myip.opendns.com with the caller's address, and
    whoami.cloudflare answers a CHAOS-class TXT query the same way).

New returns a Fetcher that routes endpoints by scheme, and
DefaultEndpoints is a reasonable mixed set of both families.
*/
package ipsource
