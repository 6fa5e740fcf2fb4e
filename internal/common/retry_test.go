package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	}, fastRetry)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_PermanentStopsImmediately(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return Permanent(ErrDuplicateSlug)
	}, fastRetry)

	assert.Equal(t, 1, calls)
	assert.Equal(t, ErrDuplicateSlug, err, "permanent errors come back unwrapped")
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	busy := errors.New("database is locked")
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return busy
	}, fastRetry)

	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.ErrorIs(t, err, busy)
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error {
		return errors.New("database is locked")
	}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Hour})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestPermanent_Nil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}
