// Package packages implements the dependency installation stage.
package packages

import (
	"context"
	"os/exec"

	"github.com/hostprep/hostprep/internal/provisioning"
)

// For testing injection.
var lookPath = exec.LookPath

// Installer is the subset of the package manager the stage needs.
// Implemented by pkgmgr.Manager.
type Installer interface {
	Bin() string
	Sudo() bool
	Install(ctx context.Context, packages ...string) error
}

// Stage ensures the configured OS packages are present. Tools already
// resolvable on the PATH are skipped; the rest are installed in one
// package-manager call. Any install failure is fatal.
type Stage struct {
	manager Installer
}

// NewStage creates the package installation stage.
func NewStage(manager Installer) *Stage {
	return &Stage{manager: manager}
}

// Name implements the Stage interface.
func (s *Stage) Name() string { return "packages" }

// Run implements the Stage interface.
func (s *Stage) Run(ctx *provisioning.Context) error {
	ctx.State.PackageManager = s.manager.Bin()
	ctx.State.UseSudo = s.manager.Sudo()

	var missing []string
	for _, pkg := range ctx.Config.Packages {
		if _, err := lookPath(pkg); err == nil {
			ctx.Observer.Event(provisioning.Event{
				Type:    provisioning.EventPackagePresent,
				Stage:   s.Name(),
				Message: pkg + " already on PATH",
			})
			continue
		}
		missing = append(missing, pkg)
	}

	if len(missing) == 0 {
		ctx.Observer.Printf("[packages] all required tools present")
		return nil
	}

	ctx.Observer.Printf("[packages] installing %d missing package(s) via %s", len(missing), s.manager.Bin())
	if err := s.manager.Install(ctx, missing...); err != nil {
		return err
	}

	for _, pkg := range missing {
		ctx.Observer.Event(provisioning.Event{
			Type:    provisioning.EventPackageInstalled,
			Stage:   s.Name(),
			Message: pkg + " installed",
		})
	}
	ctx.State.PackagesInstalled = missing
	return nil
}
