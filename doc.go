// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package ddns keeps Cloudflare DNS records pointed at the machine's
current public IP address.

An Updater discovers the public IP by racing several independent
"what is my IP" endpoints in parallel (package race, with the fetchers
and extractor from package ipsource) and then creates or updates one A
record per configured domain through the Cloudflare v4 API (package
cloudflare).

Create an Updater from configuration and run it:

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		...
	}
	u := ddns.New(cfg, logger)
	err := u.Run(ctx)

For IP discovery without touching DNS, use Updater.ResolveIP, or drive
package race directly.
*/
package ddns
