// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ddns

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ljgonzalez1/cloudflare-ddns/cloudflare"
	"github.com/ljgonzalez1/cloudflare-ddns/config"
	"github.com/ljgonzalez1/cloudflare-ddns/ipsource"
	"github.com/ljgonzalez1/cloudflare-ddns/race"
)

// ErrNoPublicIP is returned when every public-IP endpoint was
// exhausted without producing a valid address.
var ErrNoPublicIP = errors.New("ddns: no endpoint produced a public IP")

// An Updater resolves the machine's public IPv4 address and keeps the
// configured Cloudflare A records pointed at it. Config is required;
// the collaborator fields are optional and default to the production
// implementations.
type Updater struct {
	// Config supplies endpoints, retry tuning, credentials and the
	// domain list.
	Config *config.Config
	// Fetcher retrieves raw data from public-IP endpoints. If nil,
	// ipsource.New() is used.
	Fetcher race.Fetcher
	// Extractor pulls the address out of raw endpoint responses. If
	// nil, ipsource.Extractor is used.
	Extractor race.Extractor[string]
	// Cloudflare calls the Cloudflare API. If nil, a client is built
	// from Config's API token.
	Cloudflare *cloudflare.Client
	// Logger receives progress logs. If nil, logging is disabled.
	Logger *zap.Logger
}

// New returns an Updater wired with the production collaborators.
func New(cfg *config.Config, logger *zap.Logger) *Updater {
	return &Updater{
		Config: cfg,
		Cloudflare: &cloudflare.Client{
			APIToken: cfg.APIKey,
			Logger:   logger,
		},
		Logger: logger,
	}
}

// ResolveIP races the configured public-IP endpoints and returns the
// winning address. It returns ErrNoPublicIP when every endpoint was
// exhausted without a valid answer.
func (u *Updater) ResolveIP(ctx context.Context) (string, error) {
	fetcher := u.Fetcher
	if fetcher == nil {
		fetcher = ipsource.New()
	}
	extractor := u.Extractor
	if extractor == nil {
		extractor = ipsource.Extractor{}
	}

	pool := &race.Pool[string]{
		Fetcher:   fetcher,
		Extractor: extractor,
		Policy:    u.Config.RetryPolicy(),
		Logger:    u.Logger,
	}
	ip, ok := pool.Race(ctx, u.Config.RaceEndpoints())
	if !ok {
		return "", ErrNoPublicIP
	}
	return ip, nil
}

// Run resolves the public IP once and upserts the A record for every
// configured domain. Domains are updated concurrently; the first
// error cancels the remaining updates and is returned.
func (u *Updater) Run(ctx context.Context) error {
	cfg := u.Config
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := u.logger()

	ip, err := u.ResolveIP(ctx)
	if err != nil {
		return err
	}
	log.Info("resolved public IP", zap.String("ip", ip))

	zoneID := cfg.ZoneID
	if zoneID == "" {
		zone := zoneName(cfg.Domains[0])
		zoneID, err = u.Cloudflare.ZoneIDByName(ctx, zone)
		if err != nil {
			return fmt.Errorf("resolving zone %s: %w", zone, err)
		}
		log.Info("resolved zone", zap.String("zone", zone), zap.String("zone_id", zoneID))
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, domain := range cfg.Domains {
		domain := domain
		g.Go(func() error {
			if _, err := u.Cloudflare.UpsertARecord(ctx, zoneID, domain, ip, cfg.Proxied, cfg.TTL); err != nil {
				return fmt.Errorf("updating %s: %w", domain, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// zoneName guesses the zone a record name belongs to by keeping the
// last two labels. Multi-label public suffixes (co.uk and friends)
// are not recognized; set ZONE_ID explicitly for those.
func zoneName(domain string) string {
	labels := strings.Split(domain, ".")
	if len(labels) <= 2 {
		return domain
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

func (u *Updater) logger() *zap.Logger {
	if u.Logger == nil {
		return zap.NewNop()
	}
	return u.Logger
}
