package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithExponentialBackoff_SucceedsFirstTry(t *testing.T) {
	t.Parallel()
	calls := 0

	err := WithExponentialBackoff(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithExponentialBackoff_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()
	calls := 0

	err := WithExponentialBackoff(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, WithInitialDelay(time.Millisecond), WithMaxDelay(2*time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithExponentialBackoff_Exhausted(t *testing.T) {
	t.Parallel()
	calls := 0

	err := WithExponentialBackoff(context.Background(), func() error {
		calls++
		return errors.New("still broken")
	}, WithMaxRetries(2), WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Contains(t, err.Error(), "still broken")
}

func TestWithExponentialBackoff_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithExponentialBackoff(ctx, func() error {
		return errors.New("fail")
	}, WithInitialDelay(time.Hour))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
}

func TestOptions(t *testing.T) {
	t.Parallel()
	cfg := &Config{}

	WithMaxRetries(7)(cfg)
	WithInitialDelay(2 * time.Second)(cfg)
	WithMaxDelay(time.Minute)(cfg)
	WithMultiplier(1.5)(cfg)

	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.InitialDelay)
	assert.Equal(t, time.Minute, cfg.MaxDelay)
	assert.Equal(t, 1.5, cfg.Multiplier)
}
