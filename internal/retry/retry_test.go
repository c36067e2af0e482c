package retry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 5, config.MaxAttempts)
	assert.Equal(t, 20*time.Millisecond, config.BaseDelay)
	assert.Equal(t, 500*time.Millisecond, config.MaxDelay)
	assert.Equal(t, 0.25, config.JitterRatio)
}

func TestWithRetryBehavior(t *testing.T) {
	t.Run("retry_while_file_missing", func(t *testing.T) {
		callCount := 0
		err := WithRetryConfig(context.Background(), func() error {
			callCount++
			if callCount < 3 {
				return &fs.PathError{Op: "open", Path: ".env", Err: fs.ErrNotExist}
			}
			return nil
		}, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, 3, callCount, "1 initial + 2 retries")
	})

	t.Run("no_retry_on_permanent_error", func(t *testing.T) {
		callCount := 0
		err := WithRetryConfig(context.Background(), func() error {
			callCount++
			return fs.ErrPermission
		}, DefaultConfig())
		require.ErrorIs(t, err, fs.ErrPermission)
		assert.Equal(t, 1, callCount)
	})

	t.Run("eventual_failure_after_max_attempts", func(t *testing.T) {
		callCount := 0
		err := WithRetryConfig(context.Background(), func() error {
			callCount++
			_, err := os.ReadFile("/nonexistent/envparse/.env")
			return err
		}, DefaultConfig())
		require.ErrorIs(t, err, fs.ErrNotExist)
		assert.Equal(t, 5, callCount)
	})

	t.Run("context_cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := WithRetryConfig(ctx, func() error {
			return os.ErrDeadlineExceeded
		}, DefaultConfig())
		assert.Equal(t, context.Canceled, err)
	})
}

func TestWithRetryConfig(t *testing.T) {
	config := Config{
		MaxAttempts: 2,
		BaseDelay:   50 * time.Millisecond,
		MaxDelay:    200 * time.Millisecond,
		JitterRatio: 0.1,
	}

	callCount := 0
	start := time.Now()
	err := WithRetryConfig(context.Background(), func() error {
		callCount++
		if callCount < 2 {
			return fs.ErrNotExist
		}
		return nil
	}, config)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 2, callCount, "1 initial + 1 retry")
	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond, "retry delay too short")
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "missing file", err: &fs.PathError{Op: "open", Path: ".env", Err: fs.ErrNotExist}, expected: true},
		{name: "wrapped missing file", err: fmt.Errorf("watch: %w", fs.ErrNotExist), expected: true},
		{name: "deadline", err: os.ErrDeadlineExceeded, expected: true},
		{name: "network timeout", err: &net.DNSError{IsTimeout: true}, expected: true},
		{name: "non-timeout network error", err: &net.DNSError{IsTimeout: false}, expected: false},
		{name: "permission", err: fs.ErrPermission, expected: false},
		{name: "generic error", err: errors.New("generic error"), expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTransient(tt.err), "IsTransient(%v)", tt.err)
		})
	}
}
