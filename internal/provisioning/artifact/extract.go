package artifact

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hostprep/hostprep/internal/provisioning"
)

// Runner executes a command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	// #nosec G204 - the binary path comes from the run's own working directory
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// ExtractStage unpacks the fetched archive and verifies the binary inside.
//
// Extraction is unconditional and overwrites previously extracted files, so
// re-running a provisioning run always works from the archive's contents.
// The verification gate runs in a fixed order: the binary must exist, then
// it is marked executable, then a smoke-test invocation must exit zero.
// Each failure mode has its own message; a missing binary stops the gate
// before any chmod or smoke test is attempted.
type ExtractStage struct {
	runner Runner
}

// NewExtractStage creates the extract-and-verify stage.
func NewExtractStage() *ExtractStage {
	return &ExtractStage{runner: execRunner{}}
}

// NewExtractStageWithRunner creates the stage with a custom runner, for tests.
func NewExtractStageWithRunner(runner Runner) *ExtractStage {
	return &ExtractStage{runner: runner}
}

// Name implements the Stage interface.
func (s *ExtractStage) Name() string { return "extract" }

// Run implements the Stage interface.
func (s *ExtractStage) Run(ctx *provisioning.Context) error {
	if ctx.State.ArchivePath == "" {
		return fmt.Errorf("no archive to extract; fetch stage did not run")
	}

	if err := unzip(ctx.State.ArchivePath, ctx.Config.WorkDir); err != nil {
		return fmt.Errorf("failed to extract archive: %w", err)
	}
	ctx.Observer.Printf("[extract] archive extracted to %s", ctx.Config.WorkDir)

	binPath := filepath.Join(ctx.Config.WorkDir, ctx.Config.Service.BinaryName())
	if _, err := os.Stat(binPath); err != nil {
		return fmt.Errorf("binary %s missing after extraction", ctx.Config.Service.BinaryName())
	}

	if err := os.Chmod(binPath, 0755); err != nil {
		return fmt.Errorf("failed to mark %s executable: %w", binPath, err)
	}

	output, err := s.runner.Run(ctx, binPath, ctx.Config.Service.SmokeFlag)
	if err != nil {
		return fmt.Errorf("smoke test failed for %s: %w\noutput: %s", binPath, err, output)
	}

	ctx.Observer.Event(provisioning.Event{
		Type:    provisioning.EventCheckPassed,
		Stage:   s.Name(),
		Message: "binary verified",
		Fields:  map[string]string{"binary": binPath},
	})
	ctx.State.BinaryPath = binPath
	return nil
}

// unzip extracts a zip archive into dir, overwriting existing files.
func unzip(archive, dir string) error {
	reader, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	for _, file := range reader.File {
		if err := extractFile(file, dir); err != nil {
			return fmt.Errorf("entry %s: %w", file.Name, err)
		}
	}
	return nil
}

// extractFile writes a single archive entry under dir. Entries that would
// escape dir are rejected.
func extractFile(file *zip.File, dir string) error {
	target := filepath.Join(dir, filepath.Clean(file.Name))
	if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal path outside extraction directory")
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, 0750)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	// #nosec G304 - target is confined to the extraction directory above
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return err
	}

	// #nosec G110 - archives come from a release the operator chose to install
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}
