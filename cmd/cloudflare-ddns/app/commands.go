// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package app provides the cloudflare-ddns command tree.
package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information, overridden at build time with -ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "cloudflare-ddns",
	Short:         "Keep Cloudflare A records pointed at this machine's public IP",
	Long: `cloudflare-ddns discovers the machine's public IPv4 address by racing
several independent IP endpoints and updates the configured Cloudflare
DNS records to match.

Configuration is taken from the environment: CLOUDFLARE_API_KEY,
DOMAINS, and optionally ZONE_ID, PROXIED, TTL, IP_ENDPOINTS,
MAX_ATTEMPTS, ATTEMPT_TIMEOUT and RETRY_DELAY.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(getIPCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cloudflare-ddns %s (commit %s, built %s, %s)\n",
			version, commit, buildDate, runtime.Version())
	},
}

// newLogger builds the process logger. Output goes to stderr so that
// commands printing data, like get-ip, keep stdout clean.
func newLogger() (*zap.Logger, error) {
	if viper.GetBool("debug") {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
