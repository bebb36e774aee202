package configure

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostprep/hostprep/internal/config"
	"github.com/hostprep/hostprep/internal/provisioning"
)

type fakeRunner struct {
	name  string
	args  []string
	stdin string
	err   error
}

func (f *fakeRunner) RunWithInput(_ context.Context, input io.Reader, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	data, _ := io.ReadAll(input)
	f.stdin = string(data)
	return []byte("configured"), f.err
}

func newConfigureContext(t *testing.T, transcript ...string) *provisioning.Context {
	t.Helper()
	cfg := config.New()
	cfg.Domain = "example.com"
	cfg.PublicIP = "203.0.113.10"
	cfg.Configure.Transcript = transcript
	ctx := provisioning.NewContext(context.Background(), cfg)
	ctx.State.BinaryPath = "/srv/hostprep/gophish"
	ctx.Observer = provisioning.NewMockObserver()
	return ctx
}

func TestRun_FeedsTranscript(t *testing.T) {
	t.Parallel()
	ctx := newConfigureContext(t, "admin", "change-me")
	ctx.Config.Configure.Args = []string{"setup"}
	runner := &fakeRunner{}

	err := NewStageWithRunner(runner).Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, "/srv/hostprep/gophish", runner.name)
	assert.Equal(t, []string{"setup"}, runner.args)
	assert.Equal(t, "admin\nchange-me\n", runner.stdin)
}

func TestRun_EmptyTranscript(t *testing.T) {
	t.Parallel()
	ctx := newConfigureContext(t)
	runner := &fakeRunner{}

	err := NewStageWithRunner(runner).Run(ctx)

	require.NoError(t, err)
	assert.Empty(t, runner.name, "binary must not run without a transcript")
}

func TestRun_NoBinary(t *testing.T) {
	t.Parallel()
	ctx := newConfigureContext(t, "admin")
	ctx.State.BinaryPath = ""

	err := NewStageWithRunner(&fakeRunner{}).Run(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no binary to configure")
}

func TestRun_Failure(t *testing.T) {
	t.Parallel()
	ctx := newConfigureContext(t, "admin")
	runner := &fakeRunner{err: errors.New("exit status 1")}

	err := NewStageWithRunner(runner).Run(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "service configuration failed")
}
