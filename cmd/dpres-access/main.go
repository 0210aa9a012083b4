// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

// Command dpres-access is a command-line client for the Digital
// Preservation Service: it searches preserved packages, disseminates and
// downloads DIPs, uploads transfers over tus and follows their ingestion.
package main

import (
	"os"

	"github.com/dpres-fi/access-client/internal/adapter"
	"github.com/dpres-fi/access-client/internal/cli"
)

// buildVersion is set via -ldflags "-X main.buildVersion=...".
var buildVersion string

func main() {
	if buildVersion != "" {
		adapter.Version = buildVersion
	}
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
