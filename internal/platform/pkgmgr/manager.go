// Package pkgmgr wraps the system package manager behind a small client.
//
// The manager is detected once at startup, together with the privilege
// escalation decision, so every later install call behaves uniformly.
package pkgmgr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Function variables for testing injection.
var (
	lookPath = exec.LookPath
	geteuid  = os.Geteuid
)

// supportedManagers lists package manager binaries in detection order.
var supportedManagers = []string{"apt-get", "dnf", "yum"}

// Runner executes a command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	// #nosec G204 - name and args are built from trusted manager definitions
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), "DEBIAN_FRONTEND=noninteractive")
	return cmd.CombinedOutput()
}

// Manager invokes the detected system package manager.
type Manager struct {
	bin    string
	sudo   bool
	runner Runner
}

// Detect resolves the package manager and the privilege escalation mode.
// Both decisions are made once here, before any mutation: an unsupported
// distribution or a non-root user without sudo is a fatal environment error.
func Detect() (*Manager, error) {
	var bin string
	for _, candidate := range supportedManagers {
		if _, err := lookPath(candidate); err == nil {
			bin = candidate
			break
		}
	}
	if bin == "" {
		return nil, fmt.Errorf("no supported package manager found (tried %v)", supportedManagers)
	}

	sudo, err := detectEscalation()
	if err != nil {
		return nil, err
	}

	return &Manager{bin: bin, sudo: sudo, runner: execRunner{}}, nil
}

// NewManager creates a manager with explicit settings, for tests.
func NewManager(bin string, sudo bool, runner Runner) *Manager {
	return &Manager{bin: bin, sudo: sudo, runner: runner}
}

// detectEscalation decides whether privileged commands need a sudo prefix.
func detectEscalation() (bool, error) {
	if geteuid() == 0 {
		return false, nil
	}
	if _, err := lookPath("sudo"); err != nil {
		return false, fmt.Errorf("not running as root and sudo is not available")
	}
	return true, nil
}

// Bin returns the resolved package manager binary name.
func (m *Manager) Bin() string { return m.bin }

// Sudo reports whether privileged commands are prefixed with sudo.
func (m *Manager) Sudo() bool { return m.sudo }

// Installed reports whether the named tool is resolvable on the PATH.
func (m *Manager) Installed(tool string) bool {
	_, err := lookPath(tool)
	return err == nil
}

// Install installs the given packages. Installing an already-installed
// package is a no-op success; the -y flag keeps the call non-interactive.
func (m *Manager) Install(ctx context.Context, packages ...string) error {
	if len(packages) == 0 {
		return nil
	}

	name, args := m.installCommand(packages)
	output, err := m.runner.Run(ctx, name, args...)
	if err != nil {
		return fmt.Errorf("%s install failed: %w\noutput: %s", m.bin, err, output)
	}
	return nil
}

// installCommand builds the full install invocation, including the sudo
// prefix when privilege escalation is required.
func (m *Manager) installCommand(packages []string) (string, []string) {
	args := append([]string{"install", "-y"}, packages...)
	if m.sudo {
		return "sudo", append([]string{m.bin}, args...)
	}
	return m.bin, args
}
