// Package cert implements the certificate issuance stage. Issuance itself is
// delegated entirely to the external ACME client; this stage only drives it
// and records where the resulting files live.
package cert

import (
	"context"

	"github.com/hostprep/hostprep/internal/platform/certbot"
	"github.com/hostprep/hostprep/internal/provisioning"
)

// Requester is the subset of the certbot client the stage needs.
type Requester interface {
	Obtain(ctx context.Context, domain, email string) error
}

// Stage requests a domain-validated certificate via the ACME client.
type Stage struct {
	requester Requester
}

// NewStage creates the certificate stage.
func NewStage(requester Requester) *Stage {
	return &Stage{requester: requester}
}

// Name implements the Stage interface.
func (s *Stage) Name() string { return "certificate" }

// Run implements the Stage interface.
func (s *Stage) Run(ctx *provisioning.Context) error {
	if ctx.Config.Cert.Skip {
		ctx.Observer.Printf("[certificate] skipped by configuration")
		return nil
	}

	ctx.Observer.Printf("[certificate] requesting certificate for %s (manual DNS challenge)", ctx.Config.Domain)
	ctx.Observer.Printf("[certificate] you will be asked to create a DNS TXT record; the prompt blocks until you confirm")

	if err := s.requester.Obtain(ctx, ctx.Config.Domain, ctx.Config.Cert.Email); err != nil {
		return err
	}

	ctx.State.FullchainPath, ctx.State.PrivkeyPath = certbot.CertPaths(ctx.Config.Domain)
	ctx.Observer.Printf("[certificate] issued: %s", ctx.State.FullchainPath)
	return nil
}
