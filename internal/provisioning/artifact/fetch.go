// Package artifact implements the release archive stages: fetching the
// versioned archive into the working directory and extracting plus
// verifying the binary it contains.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hostprep/hostprep/internal/provisioning"
)

// FetchStage ensures the release archive exists in the working directory.
//
// If the archive is already present this is a cache hit: no network access
// happens and the file is not re-validated. Otherwise a single download
// attempt is made; failure is fatal with a distinct "download failed"
// message so the operator can tell transport problems from install problems.
type FetchStage struct {
	client *http.Client
}

// NewFetchStage creates the fetch stage with a default HTTP client.
func NewFetchStage() *FetchStage {
	return &FetchStage{
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

// NewFetchStageWithClient creates the fetch stage with a custom client, for tests.
func NewFetchStageWithClient(client *http.Client) *FetchStage {
	return &FetchStage{client: client}
}

// Name implements the Stage interface.
func (s *FetchStage) Name() string { return "fetch" }

// Run implements the Stage interface.
func (s *FetchStage) Run(ctx *provisioning.Context) error {
	if err := os.MkdirAll(ctx.Config.WorkDir, 0750); err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}

	path := filepath.Join(ctx.Config.WorkDir, ctx.Config.Service.ArchiveName())
	if _, err := os.Stat(path); err == nil {
		ctx.Observer.Event(provisioning.Event{
			Type:    provisioning.EventArtifactCached,
			Stage:   s.Name(),
			Message: "archive already present, skipping download",
			Fields:  map[string]string{"path": path},
		})
		ctx.State.ArchivePath = path
		ctx.State.Downloaded = false
		return nil
	}

	url := ctx.Config.Service.DownloadURL()
	ctx.Observer.Printf("[fetch] downloading %s", url)

	sum, err := s.download(ctx, url, path)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	if want := ctx.Config.Service.SHA256; want != "" && sum != want {
		// Leave no poisoned cache entry behind.
		_ = os.Remove(path)
		return fmt.Errorf("archive checksum mismatch: expected %s, got %s", want, sum)
	}

	ctx.Observer.Event(provisioning.Event{
		Type:    provisioning.EventArtifactDownloaded,
		Stage:   s.Name(),
		Message: "archive downloaded",
		Fields:  map[string]string{"path": path},
	})
	ctx.State.ArchivePath = path
	ctx.State.Downloaded = true
	return nil
}

// download fetches url into path and returns the hex SHA-256 of the body.
// The archive is written to a temporary file first so an interrupted
// download never looks like a cache hit on the next run.
func (s *FetchStage) download(ctx *provisioning.Context, url, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned status %d for %s", resp.StatusCode, url)
	}

	tmp := path + ".part"
	// #nosec G304 - path is derived from the run's own working directory
	out, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to create archive file: %w", err)
	}

	hash := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, hash), resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to write archive: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to close archive file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to move archive into place: %w", err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
