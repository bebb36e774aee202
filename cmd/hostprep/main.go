// Package main is the entry point for the hostprep CLI.
//
// hostprep provisions a self-hosted service release onto a fresh Linux
// host: it installs required OS packages, downloads and extracts the
// release archive, verifies the binary runs, validates the domain's DNS
// A record, and drives the external ACME client for TLS issuance.
//
// Commands: provision, setup, check, version, completion.
//
// For detailed usage information, run:
//
//	hostprep --help
package main

import (
	"fmt"
	"os"

	"github.com/hostprep/hostprep/cmd/hostprep/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
