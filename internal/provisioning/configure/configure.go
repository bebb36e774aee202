// Package configure implements the post-install configuration stage: the one
// place the workflow drives the installed binary instead of just verifying
// it. A short scripted transcript is fed to the binary's standard input.
package configure

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/hostprep/hostprep/internal/provisioning"
)

// Runner executes a command with the given stdin and returns combined output.
type Runner interface {
	RunWithInput(ctx context.Context, input io.Reader, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) RunWithInput(ctx context.Context, input io.Reader, name string, args ...string) ([]byte, error) {
	// #nosec G204 - the binary path comes from the run's own working directory
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = input
	return cmd.CombinedOutput()
}

// Stage feeds the configured transcript to the installed binary.
type Stage struct {
	runner Runner
}

// NewStage creates the configuration stage.
func NewStage() *Stage {
	return &Stage{runner: execRunner{}}
}

// NewStageWithRunner creates the stage with a custom runner, for tests.
func NewStageWithRunner(runner Runner) *Stage {
	return &Stage{runner: runner}
}

// Name implements the Stage interface.
func (s *Stage) Name() string { return "configure" }

// Run implements the Stage interface.
func (s *Stage) Run(ctx *provisioning.Context) error {
	transcript := ctx.Config.Configure.Transcript
	if len(transcript) == 0 {
		ctx.Observer.Printf("[configure] no transcript configured, skipping")
		return nil
	}

	if ctx.State.BinaryPath == "" {
		return fmt.Errorf("no binary to configure; extract stage did not run")
	}

	ctx.Observer.Printf("[configure] feeding %d line(s) to %s", len(transcript), ctx.State.BinaryPath)

	input := strings.NewReader(strings.Join(transcript, "\n") + "\n")
	output, err := s.runner.RunWithInput(ctx, input, ctx.State.BinaryPath, ctx.Config.Configure.Args...)
	if err != nil {
		return fmt.Errorf("service configuration failed: %w\noutput: %s", err, output)
	}

	return nil
}
