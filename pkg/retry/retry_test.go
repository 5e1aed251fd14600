package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instantBackoff(int) time.Duration { return time.Nanosecond }

func TestExponentialBackoff(t *testing.T) {
	t.Parallel()

	t.Run("TinyDelayDoesNotPanic", func(t *testing.T) {
		backoff := ExponentialBackoff(time.Nanosecond)
		require.NotPanics(t, func() {
			wait := backoff(1)
			assert.Positive(t, wait)
		})
	})

	t.Run("Grows", func(t *testing.T) {
		backoff := ExponentialBackoff(100 * time.Millisecond)
		assert.Greater(t, backoff(3), backoff(1))
	})
}

func TestDo(t *testing.T) {
	t.Parallel()

	t.Run("SucceedsFirstTry", func(t *testing.T) {
		var calls int
		err := Do(t.Context(), RetryConfig{MaxAttempts: 3}, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("RetriesUntilSuccess", func(t *testing.T) {
		var calls int
		cfg := RetryConfig{MaxAttempts: 5, Backoff: instantBackoff}
		err := Do(t.Context(), cfg, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		var calls int
		wantErr := errors.New("still failing")
		cfg := RetryConfig{MaxAttempts: 4, Backoff: instantBackoff}
		err := Do(t.Context(), cfg, func() error {
			calls++
			return wantErr
		})
		require.ErrorIs(t, err, wantErr)
		assert.Equal(t, 4, calls)
	})

	t.Run("NonRetryableStopsEarly", func(t *testing.T) {
		var calls int
		wantErr := errors.New("fatal")
		cfg := RetryConfig{
			MaxAttempts: 4,
			Backoff:     instantBackoff,
			ShouldRetry: func(err error) bool { return !errors.Is(err, wantErr) },
		}
		err := Do(t.Context(), cfg, func() error {
			calls++
			return wantErr
		})
		require.ErrorIs(t, err, wantErr)
		assert.Equal(t, 1, calls)
	})
}
