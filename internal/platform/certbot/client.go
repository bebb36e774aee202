// Package certbot shells out to the certbot ACME client for domain-validated
// TLS issuance. The ACME protocol itself is never implemented here; the only
// knowledge this package carries is the command line for manual DNS-challenge
// mode and the live directory naming convention for issued certificates.
package certbot

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// liveDir is where certbot places issued certificates, by its own convention.
const liveDir = "/etc/letsencrypt/live"

// Runner executes a command interactively, attached to the operator's
// terminal. Manual DNS-challenge mode pauses until the operator has created
// the TXT record, so stdin/stdout must pass through.
type Runner interface {
	RunInteractive(ctx context.Context, name string, args ...string) error
}

// execRunner runs commands attached to the current terminal.
type execRunner struct{}

func (execRunner) RunInteractive(ctx context.Context, name string, args ...string) error {
	// #nosec G204 - name and args are built from trusted client definitions
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Client wraps certbot invocations.
type Client struct {
	sudo   bool
	runner Runner
}

// New creates a certbot client. sudo controls whether invocations are
// prefixed for privilege escalation, matching the decision made at startup.
func New(sudo bool) *Client {
	return &Client{sudo: sudo, runner: execRunner{}}
}

// NewWithRunner creates a client with a custom runner, for tests.
func NewWithRunner(sudo bool, runner Runner) *Client {
	return &Client{sudo: sudo, runner: runner}
}

// Obtain requests a certificate for the domain in manual DNS-challenge mode.
// certbot prints the challenge token and blocks until the operator confirms
// the TXT record exists; that pause is certbot's, not ours.
func (c *Client) Obtain(ctx context.Context, domain, email string) error {
	name, args := c.obtainCommand(domain, email)
	if err := c.runner.RunInteractive(ctx, name, args...); err != nil {
		return fmt.Errorf("certificate request for %s failed: %w", domain, err)
	}
	return nil
}

// obtainCommand builds the certbot invocation.
func (c *Client) obtainCommand(domain, email string) (string, []string) {
	args := []string{
		"certonly",
		"--manual",
		"--preferred-challenges", "dns",
		"-d", domain,
	}
	if email != "" {
		args = append(args, "-m", email, "--agree-tos", "--no-eff-email")
	} else {
		args = append(args, "--register-unsafely-without-email")
	}

	if c.sudo {
		return "sudo", append([]string{"certbot"}, args...)
	}
	return "certbot", args
}

// CertPaths returns the conventional paths of the issued certificate and key.
func CertPaths(domain string) (fullchain, privkey string) {
	return filepath.Join(liveDir, domain, "fullchain.pem"),
		filepath.Join(liveDir, domain, "privkey.pem")
}
