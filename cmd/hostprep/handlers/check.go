package handlers

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/hostprep/hostprep/internal/config"
	"github.com/hostprep/hostprep/internal/provisioning"
	"github.com/hostprep/hostprep/internal/provisioning/dnscheck"
	"github.com/hostprep/hostprep/internal/ui"
	"github.com/hostprep/hostprep/internal/util/retry"
)

// newResolver returns the DNS resolver - replaced in tests.
var newResolver = func() dnscheck.Resolver {
	return net.DefaultResolver
}

// Check performs a standalone DNS validation of the domain's A record.
//
// Without --wait a single lookup runs and all three outcomes (absent,
// match, mismatch) are reported without error, mirroring the non-fatal
// contract of the provisioning pipeline's dnscheck stage. With --wait the
// lookup is retried with exponential backoff until the record matches or
// the timeout expires, and only the timeout is an error.
func Check(ctx context.Context, domain, expectedIP string, wait bool, timeout time.Duration) error {
	if err := config.ValidateDomain(domain); err != nil {
		return err
	}
	if err := config.ValidateIPv4(expectedIP); err != nil {
		return err
	}

	resolver := newResolver()
	styled := isInteractive()

	if !wait {
		result, err := dnscheck.Check(ctx, resolver, domain, expectedIP)
		if err != nil {
			return fmt.Errorf("DNS lookup failed: %w", err)
		}
		fmt.Print(ui.RenderDNSCheck(domain, expectedIP, result, styled))
		return nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var last *provisioning.DNSResult
	err := retry.WithExponentialBackoff(waitCtx, func() error {
		result, err := dnscheck.Check(waitCtx, resolver, domain, expectedIP)
		if err != nil {
			return err
		}
		last = result
		if !result.Matches {
			return fmt.Errorf("%s does not resolve to %s yet", domain, expectedIP)
		}
		return nil
	},
		// The context timeout is the real budget; the retry cap just has
		// to outlast it.
		retry.WithMaxRetries(1000),
		retry.WithInitialDelay(5*time.Second),
		retry.WithMaxDelay(30*time.Second),
	)

	fmt.Print(ui.RenderDNSCheck(domain, expectedIP, last, styled))
	if err != nil {
		return fmt.Errorf("DNS record did not match within %v", timeout)
	}
	return nil
}
