// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package app

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	ddns "github.com/ljgonzalez1/cloudflare-ddns"
	"github.com/ljgonzalez1/cloudflare-ddns/config"
)

var getIPCmd = &cobra.Command{
	Use:   "get-ip [endpoints]",
	Short: "Print the machine's public IPv4 address",
	Long: `Race the public-IP endpoints and print the winning IPv4 address to
stdout. An optional comma-separated endpoint list overrides both the
IP_ENDPOINTS environment variable and the built-in defaults.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGetIP,
}

func runGetIP(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	if len(args) == 1 {
		cfg.Endpoints = config.SplitList(args[0])
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	u := &ddns.Updater{Config: cfg, Logger: log}
	ip, err := u.ResolveIP(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ip)
	return nil
}
