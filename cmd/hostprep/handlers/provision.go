// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/hostprep/hostprep/internal/config"
	"github.com/hostprep/hostprep/internal/platform/certbot"
	"github.com/hostprep/hostprep/internal/platform/pkgmgr"
	"github.com/hostprep/hostprep/internal/provisioning"
	"github.com/hostprep/hostprep/internal/provisioning/artifact"
	"github.com/hostprep/hostprep/internal/provisioning/cert"
	"github.com/hostprep/hostprep/internal/provisioning/configure"
	"github.com/hostprep/hostprep/internal/provisioning/dnscheck"
	"github.com/hostprep/hostprep/internal/provisioning/packages"
	"github.com/hostprep/hostprep/internal/ui"
)

// packageManager is the subset of pkgmgr.Manager the handlers need.
type packageManager interface {
	Bin() string
	Sudo() bool
	Install(ctx context.Context, packages ...string) error
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// findConfigFile locates the default config file.
	findConfigFile = config.FindConfigFile

	// saveConfigFile persists a config to disk.
	saveConfigFile = config.SaveFile

	// detectManager resolves the package manager and privilege escalation.
	detectManager = func() (packageManager, error) {
		return pkgmgr.Detect()
	}

	// newCertRequester creates the ACME client wrapper.
	newCertRequester = func(sudo bool) cert.Requester {
		return certbot.New(sudo)
	}

	// runStages executes the provisioning pipeline.
	runStages = provisioning.RunStages

	// runWizard runs the interactive setup wizard.
	runWizard = config.RunWizard

	// isInteractive reports whether stdout is a TTY.
	isInteractive = ui.IsInteractiveTTY
)

// ProvisionOptions carries the provision command's arguments and flags.
type ProvisionOptions struct {
	Domain     string
	PublicIP   string
	ConfigPath string
	Release    string
	Mirror     string
	WorkDir    string
	SkipCert   bool
}

// Provision runs the complete provisioning workflow for a host.
//
// The workflow is strictly sequential and fail-fast:
//  1. Resolves configuration (file, then flags, then positional arguments)
//  2. Resolves the package manager and privilege escalation mode — a fatal
//     environment error here happens before anything on the host is touched
//  3. Runs the stage pipeline: packages, fetch, extract, dnscheck,
//     certificate, configure
//  4. Prints the operator-facing summary
//
// Side effects of completed stages are deliberately left in place when a
// later stage fails; a re-run is idempotent.
func Provision(ctx context.Context, opts ProvisionOptions) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	log.Printf("Provisioning %s (expected IP %s)", cfg.Domain, cfg.PublicIP)

	manager, err := detectManager()
	if err != nil {
		return fmt.Errorf("environment check failed: %w", err)
	}

	return runPipeline(ctx, cfg, manager)
}

// resolveConfig layers the configuration sources: file, flags, arguments.
func resolveConfig(opts ProvisionOptions) (*config.Config, error) {
	cfg := config.New()

	path := opts.ConfigPath
	if path == "" {
		// A missing default config file is fine; defaults apply.
		if found, err := findConfigFile(); err == nil {
			path = found
		}
	}
	if path != "" {
		loaded, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		log.Printf("Using config: %s", path)
	}

	cfg.Domain = opts.Domain
	cfg.PublicIP = opts.PublicIP
	if opts.Release != "" {
		cfg.Service.Version = opts.Release
	}
	if opts.Mirror != "" {
		cfg.Service.Mirror = opts.Mirror
	}
	if opts.WorkDir != "" {
		cfg.WorkDir = opts.WorkDir
	}
	if opts.SkipCert {
		cfg.Cert.Skip = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runPipeline assembles and executes the stage pipeline, then prints the summary.
func runPipeline(ctx context.Context, cfg *config.Config, manager packageManager) error {
	pctx := provisioning.NewContext(ctx, cfg)

	stages := []provisioning.Stage{
		packages.NewStage(manager),
		artifact.NewFetchStage(),
		artifact.NewExtractStage(),
		dnscheck.NewStage(),
		cert.NewStage(newCertRequester(manager.Sudo())),
		configure.NewStage(),
	}

	if err := runStages(pctx, stages); err != nil {
		return err
	}

	printSummary(cfg, pctx.State)
	return nil
}

// printSummary renders the operator-facing next steps.
func printSummary(cfg *config.Config, state *provisioning.State) {
	fmt.Print(ui.RenderSummary(ui.Summary{
		Domain:     cfg.Domain,
		PublicIP:   cfg.PublicIP,
		BinaryPath: state.BinaryPath,
		AdminPort:  cfg.Service.AdminPort,
		Ports:      config.FirewallPorts,
		DNS:        state.DNS,
		Fullchain:  state.FullchainPath,
		Privkey:    state.PrivkeyPath,
		Styled:     isInteractive(),
	}))
}
