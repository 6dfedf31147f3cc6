package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWithRetry(t *testing.T) {
	saved := RetryDelays
	RetryDelays = []time.Duration{time.Millisecond, time.Millisecond}
	t.Cleanup(func() { RetryDelays = saved })

	t.Run("retries serialization failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return &pgconn.PgError{Code: pgerrcode.SerializationFailure}
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the last delay", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return &pgconn.PgError{Code: pgerrcode.DeadlockDetected}
		})
		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		})
		assert.True(t, IsUniqueViolation(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("connection errors are retryable", func(t *testing.T) {
		assert.True(t, IsRetryable(errors.New("dial tcp: connection refused")))
		assert.False(t, IsRetryable(errors.New("syntax error")))
	})
}
