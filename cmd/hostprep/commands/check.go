package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/hostprep/hostprep/cmd/hostprep/handlers"
)

// Check returns the standalone DNS validation command.
//
// Required positional arguments:
//
//	domain: the domain whose A record is checked
//	ipv4:   the expected public IPv4 address
//
// Flags:
//
//	--wait:    Poll with backoff until the record matches
//	--timeout: Give up waiting after this long (with --wait)
func Check() *cobra.Command {
	var (
		wait    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "check <domain> <ipv4>",
		Short: "Check that the domain's A record points at the expected IP",
		Long: `Check that the domain's DNS A record points at the expected IP.

When multiple A records exist the last one returned by the resolver is
compared. A missing or mismatched record is reported but is not an error:
DNS propagation takes time.

With --wait the check polls with exponential backoff until the record
matches or the timeout expires; only then is a mismatch treated as an error.

Examples:
  hostprep check example.com 203.0.113.10
  hostprep check example.com 203.0.113.10 --wait --timeout 10m`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Check(cmd.Context(), args[0], args[1], wait, timeout)
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Poll until the record matches")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Give up waiting after this long (with --wait)")

	return cmd
}
