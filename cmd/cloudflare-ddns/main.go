// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package main is the entry point for the cloudflare-ddns command.
package main

import (
	"os"

	"github.com/ljgonzalez1/cloudflare-ddns/cmd/cloudflare-ddns/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
