package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	opts := RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return nil
		}, opts)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers after transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, opts)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return errors.New("permanent")
		}, opts)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := WithRetry(ctx, func() error {
			return errors.New("transient")
		}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Minute})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(ErrInsufficientFunds)

	assert.True(t, IsValidation(err))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Contains(t, err.Error(), "insufficient funds")

	assert.False(t, IsValidation(errors.New("plain")))
	assert.False(t, IsValidation(nil))
}

func TestRemoteError(t *testing.T) {
	err := NewRemoteError("fetch ledger", 503, errors.New("gateway timeout"))

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, 503, remoteErr.Status)
	assert.Contains(t, err.Error(), "fetch ledger")
	assert.Contains(t, err.Error(), "503")

	// Transport failures carry no status.
	noStatus := NewRemoteError("transfer", 0, errors.New("connection refused"))
	assert.NotContains(t, noStatus.Error(), "status")
}
