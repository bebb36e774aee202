package commands

import (
	"github.com/spf13/cobra"

	"github.com/hostprep/hostprep/cmd/hostprep/handlers"
)

// Provision returns the non-interactive provisioning command.
//
// Required positional arguments:
//
//	domain: the fully qualified domain the host will serve
//	ipv4:   the host's expected public IPv4 address
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect hostprep.yaml)
//	--release:    Release version to install
//	--mirror:     Download mirror base URL
//	--work-dir:   Working directory for downloads and extraction
//	--skip-cert:  Skip the certificate issuance stage
func Provision() *cobra.Command {
	var opts handlers.ProvisionOptions

	cmd := &cobra.Command{
		Use:   "provision <domain> <ipv4>",
		Short: "Provision the host for the given domain and IP",
		Long: `Provision the host end to end for the given domain and public IP.

Stages run strictly in order and the run aborts on the first failure:

  1. packages     install required OS packages (idempotent)
  2. fetch        download the release archive (skipped when cached)
  3. extract      unpack the archive and verify the binary runs
  4. dnscheck     compare the domain's A record with the expected IP (non-fatal)
  5. certificate  request a TLS certificate via certbot (manual DNS challenge)
  6. configure    feed the configured transcript to the binary, if any

Examples:
  # Provision using defaults
  hostprep provision example.com 203.0.113.10

  # Pin a release and keep downloads in a shared cache
  hostprep provision example.com 203.0.113.10 --release v0.12.1 --work-dir /srv/cache

  # Re-run without requesting another certificate
  hostprep provision example.com 203.0.113.10 --skip-cert`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Domain = args[0]
			opts.PublicIP = args[1]
			return handlers.Provision(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: hostprep.yaml)")
	cmd.Flags().StringVar(&opts.Release, "release", "", "Release version to install")
	cmd.Flags().StringVar(&opts.Mirror, "mirror", "", "Download mirror base URL")
	cmd.Flags().StringVar(&opts.WorkDir, "work-dir", "", "Working directory for downloads and extraction")
	cmd.Flags().BoolVar(&opts.SkipCert, "skip-cert", false, "Skip the certificate issuance stage")

	return cmd
}
