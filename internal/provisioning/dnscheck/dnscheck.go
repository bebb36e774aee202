// Package dnscheck implements the DNS validation stage.
//
// DNS propagation delay is expected after pointing a new domain at a host,
// so nothing in this package is fatal: absence, match, and mismatch are all
// reported and the run continues.
package dnscheck

import (
	"context"
	"errors"
	"net"

	"github.com/hostprep/hostprep/internal/provisioning"
)

// Resolver resolves hostnames. Implemented by *net.Resolver.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Resolve returns the domain's A record, or "" if none was found.
// When the resolver returns multiple records the last one wins; operators
// watching a freshly changed record care about the newest answer.
func Resolve(ctx context.Context, resolver Resolver, domain string) (string, error) {
	addrs, err := resolver.LookupHost(ctx, domain)
	if err != nil {
		// A NXDOMAIN-style answer is an expected outcome, not a failure.
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return "", nil
		}
		return "", err
	}

	last := ""
	for _, addr := range addrs {
		ip := net.ParseIP(addr)
		if ip != nil && ip.To4() != nil {
			last = addr
		}
	}
	return last, nil
}

// Check resolves the domain and compares the result against the expected IP.
func Check(ctx context.Context, resolver Resolver, domain, expectedIP string) (*provisioning.DNSResult, error) {
	resolved, err := Resolve(ctx, resolver, domain)
	if err != nil {
		return nil, err
	}
	return &provisioning.DNSResult{
		ResolvedIP: resolved,
		Matches:    resolved != "" && resolved == expectedIP,
	}, nil
}

// Stage validates that the domain's A record points at the expected IP.
type Stage struct {
	resolver Resolver
}

// NewStage creates the DNS validation stage using the system resolver.
func NewStage() *Stage {
	return &Stage{resolver: net.DefaultResolver}
}

// NewStageWithResolver creates the stage with a custom resolver, for tests.
func NewStageWithResolver(resolver Resolver) *Stage {
	return &Stage{resolver: resolver}
}

// Name implements the Stage interface.
func (s *Stage) Name() string { return "dnscheck" }

// Run implements the Stage interface. It never returns an error: all three
// outcomes are recorded in State and reported through the Observer.
func (s *Stage) Run(ctx *provisioning.Context) error {
	domain := ctx.Config.Domain
	expected := ctx.Config.PublicIP

	result, err := Check(ctx, s.resolver, domain, expected)
	if err != nil {
		provisioning.LogCheckWarning(ctx.Observer, s.Name(),
			"DNS lookup for "+domain+" failed: "+err.Error())
		ctx.State.DNS = &provisioning.DNSResult{}
		return nil
	}
	ctx.State.DNS = result

	switch {
	case result.ResolvedIP == "":
		provisioning.LogCheckWarning(ctx.Observer, s.Name(),
			"no A record found for "+domain+" yet; DNS may still be propagating")
	case result.Matches:
		ctx.Observer.Event(provisioning.Event{
			Type:    provisioning.EventCheckPassed,
			Stage:   s.Name(),
			Message: domain + " resolves to " + expected,
		})
	default:
		provisioning.LogCheckWarning(ctx.Observer, s.Name(),
			domain+" resolves to "+result.ResolvedIP+", expected "+expected)
	}

	return nil
}
