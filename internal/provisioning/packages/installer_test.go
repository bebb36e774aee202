package packages

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostprep/hostprep/internal/config"
	"github.com/hostprep/hostprep/internal/provisioning"
)

type fakeInstaller struct {
	bin       string
	sudo      bool
	installed []string
	err       error
}

func (f *fakeInstaller) Bin() string { return f.bin }
func (f *fakeInstaller) Sudo() bool  { return f.sudo }

func (f *fakeInstaller) Install(_ context.Context, packages ...string) error {
	f.installed = append(f.installed, packages...)
	return f.err
}

func fakeLookPath(t *testing.T, onPath map[string]bool) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(name string) (string, error) {
		if onPath[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
}

func newTestContext(packages ...string) (*provisioning.Context, *provisioning.MockObserver) {
	cfg := config.New()
	cfg.Packages = packages
	ctx := provisioning.NewContext(context.Background(), cfg)
	obs := provisioning.NewMockObserver()
	ctx.Observer = obs
	return ctx, obs
}

func TestRun_AllPresent(t *testing.T) {
	fakeLookPath(t, map[string]bool{"certbot": true, "unzip": true})
	installer := &fakeInstaller{bin: "apt-get"}
	ctx, obs := newTestContext("certbot", "unzip")

	err := NewStage(installer).Run(ctx)

	require.NoError(t, err)
	assert.Empty(t, installer.installed, "nothing should be installed")
	assert.True(t, obs.HasEvent(provisioning.EventPackagePresent))
	assert.Empty(t, ctx.State.PackagesInstalled)
}

func TestRun_InstallsMissing(t *testing.T) {
	fakeLookPath(t, map[string]bool{"unzip": true})
	installer := &fakeInstaller{bin: "apt-get", sudo: true}
	ctx, obs := newTestContext("certbot", "unzip")

	err := NewStage(installer).Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"certbot"}, installer.installed)
	assert.Equal(t, []string{"certbot"}, ctx.State.PackagesInstalled)
	assert.True(t, obs.HasEvent(provisioning.EventPackageInstalled))
}

func TestRun_RecordsEnvironment(t *testing.T) {
	fakeLookPath(t, map[string]bool{"certbot": true})
	installer := &fakeInstaller{bin: "dnf", sudo: true}
	ctx, _ := newTestContext("certbot")

	require.NoError(t, NewStage(installer).Run(ctx))

	assert.Equal(t, "dnf", ctx.State.PackageManager)
	assert.True(t, ctx.State.UseSudo)
}

func TestRun_InstallFailure(t *testing.T) {
	fakeLookPath(t, map[string]bool{})
	installer := &fakeInstaller{bin: "apt-get", err: errors.New("exit status 100")}
	ctx, obs := newTestContext("certbot")

	err := NewStage(installer).Run(ctx)

	require.Error(t, err)
	assert.False(t, obs.HasEvent(provisioning.EventPackageInstalled))
	assert.Empty(t, ctx.State.PackagesInstalled)
}

func TestName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "packages", NewStage(&fakeInstaller{}).Name())
}
