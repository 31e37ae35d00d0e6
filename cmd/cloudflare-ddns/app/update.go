// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package app

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ddns "github.com/ljgonzalez1/cloudflare-ddns"
	"github.com/ljgonzalez1/cloudflare-ddns/config"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Resolve the public IP and update all configured records",
	Long: `Resolve the machine's public IPv4 address and upsert a Cloudflare
A record for every domain in DOMAINS. Interrupt signals cancel the run
cleanly; in-flight requests are abandoned.`,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ddns.New(cfg, log).Run(ctx); err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}
	return nil
}
