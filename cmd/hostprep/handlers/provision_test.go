package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostprep/hostprep/internal/config"
	"github.com/hostprep/hostprep/internal/provisioning"
	"github.com/hostprep/hostprep/internal/provisioning/cert"
)

// saveAndRestoreFactories snapshots the injectable factory variables and
// restores them when the test finishes.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origLoad := loadConfigFile
	origFind := findConfigFile
	origSave := saveConfigFile
	origDetect := detectManager
	origRequester := newCertRequester
	origRun := runStages
	origWizard := runWizard
	origTTY := isInteractive
	origResolver := newResolver
	t.Cleanup(func() {
		loadConfigFile = origLoad
		findConfigFile = origFind
		saveConfigFile = origSave
		detectManager = origDetect
		newCertRequester = origRequester
		runStages = origRun
		runWizard = origWizard
		isInteractive = origTTY
		newResolver = origResolver
	})
}

type fakeManager struct {
	bin  string
	sudo bool
}

func (f *fakeManager) Bin() string { return f.bin }
func (f *fakeManager) Sudo() bool  { return f.sudo }

func (f *fakeManager) Install(context.Context, ...string) error { return nil }

type fakeRequester struct{}

func (fakeRequester) Obtain(context.Context, string, string) error { return nil }

// stubPipeline replaces everything Provision touches after config resolution.
// It returns pointers to the captured pipeline context and stage list.
func stubPipeline(t *testing.T) (**provisioning.Context, *[]provisioning.Stage) {
	t.Helper()
	var capturedCtx *provisioning.Context
	var capturedStages []provisioning.Stage

	detectManager = func() (packageManager, error) {
		return &fakeManager{bin: "apt-get"}, nil
	}
	newCertRequester = func(bool) cert.Requester { return fakeRequester{} }
	isInteractive = func() bool { return false }
	runStages = func(ctx *provisioning.Context, stages []provisioning.Stage) error {
		capturedCtx = ctx
		capturedStages = stages
		return nil
	}

	return &capturedCtx, &capturedStages
}

func TestProvision_RunsPipeline(t *testing.T) {
	saveAndRestoreFactories(t)
	findConfigFile = func() (string, error) { return "", errors.New("not found") }
	ctxPtr, stagesPtr := stubPipeline(t)

	err := Provision(context.Background(), ProvisionOptions{
		Domain:   "example.cam",
		PublicIP: "203.0.113.10",
	})

	require.NoError(t, err)
	require.NotNil(t, *ctxPtr)
	assert.Equal(t, "example.cam", (*ctxPtr).Config.Domain)
	assert.Equal(t, "203.0.113.10", (*ctxPtr).Config.PublicIP)

	names := make([]string, 0, len(*stagesPtr))
	for _, s := range *stagesPtr {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"packages", "fetch", "extract", "dnscheck", "certificate", "configure"}, names)
}

func TestProvision_FlagOverrides(t *testing.T) {
	saveAndRestoreFactories(t)
	findConfigFile = func() (string, error) { return "", errors.New("not found") }
	ctxPtr, _ := stubPipeline(t)

	err := Provision(context.Background(), ProvisionOptions{
		Domain:   "example.cam",
		PublicIP: "203.0.113.10",
		Release:  "v0.11.0",
		Mirror:   "https://mirror.example.org/releases",
		WorkDir:  "/srv/cache",
		SkipCert: true,
	})

	require.NoError(t, err)
	cfg := (*ctxPtr).Config
	assert.Equal(t, "v0.11.0", cfg.Service.Version)
	assert.Equal(t, "https://mirror.example.org/releases", cfg.Service.Mirror)
	assert.Equal(t, "/srv/cache", cfg.WorkDir)
	assert.True(t, cfg.Cert.Skip)
}

func TestProvision_ConfigFileLayering(t *testing.T) {
	saveAndRestoreFactories(t)
	ctxPtr, _ := stubPipeline(t)

	fileCfg := config.New()
	fileCfg.Service.Version = "v0.10.0"
	fileCfg.Service.SHA256 = "abc123"
	loadConfigFile = func(path string) (*config.Config, error) {
		assert.Equal(t, "/etc/hostprep.yaml", path)
		return fileCfg, nil
	}

	err := Provision(context.Background(), ProvisionOptions{
		Domain:     "example.cam",
		PublicIP:   "203.0.113.10",
		ConfigPath: "/etc/hostprep.yaml",
		Release:    "v0.12.1", // flag wins over the file
	})

	require.NoError(t, err)
	cfg := (*ctxPtr).Config
	assert.Equal(t, "v0.12.1", cfg.Service.Version)
	assert.Equal(t, "abc123", cfg.Service.SHA256, "file settings without flag overrides survive")
}

func TestProvision_InvalidIP(t *testing.T) {
	saveAndRestoreFactories(t)
	findConfigFile = func() (string, error) { return "", errors.New("not found") }
	detectCalled := false
	detectManager = func() (packageManager, error) {
		detectCalled = true
		return &fakeManager{}, nil
	}

	err := Provision(context.Background(), ProvisionOptions{
		Domain:   "example.cam",
		PublicIP: "not-an-ip",
	})

	require.Error(t, err)
	assert.False(t, detectCalled, "validation failure must precede any environment work")
}

func TestProvision_EnvironmentFailure(t *testing.T) {
	saveAndRestoreFactories(t)
	findConfigFile = func() (string, error) { return "", errors.New("not found") }
	pipelineRan := false
	detectManager = func() (packageManager, error) {
		return nil, errors.New("no supported package manager found")
	}
	runStages = func(*provisioning.Context, []provisioning.Stage) error {
		pipelineRan = true
		return nil
	}

	err := Provision(context.Background(), ProvisionOptions{
		Domain:   "example.cam",
		PublicIP: "203.0.113.10",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment check failed")
	assert.False(t, pipelineRan)
}

func TestProvision_ConfigLoadFailure(t *testing.T) {
	saveAndRestoreFactories(t)
	loadConfigFile = func(string) (*config.Config, error) {
		return nil, errors.New("yaml: line 3: mapping values")
	}

	err := Provision(context.Background(), ProvisionOptions{
		Domain:     "example.cam",
		PublicIP:   "203.0.113.10",
		ConfigPath: "/etc/broken.yaml",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestProvision_StageFailurePropagates(t *testing.T) {
	saveAndRestoreFactories(t)
	findConfigFile = func() (string, error) { return "", errors.New("not found") }
	stubPipeline(t)
	runStages = func(*provisioning.Context, []provisioning.Stage) error {
		return errors.New("fetch stage failed: download failed")
	}

	err := Provision(context.Background(), ProvisionOptions{
		Domain:   "example.cam",
		PublicIP: "203.0.113.10",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch stage failed")
}
