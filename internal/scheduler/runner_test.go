package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithRetry(t *testing.T) {
	// Captura as esperas sem dormir de verdade
	var slept []time.Duration
	originalSleep := sleepFn
	sleepFn = func(d time.Duration) {
		slept = append(slept, d)
	}
	defer func() { sleepFn = originalSleep }()

	spec := jobSpec{
		Name:        "job_teste",
		MaxAttempts: 3,
		BackoffBase: 60 * time.Second,
	}

	t.Run("sucesso na primeira tentativa não espera", func(t *testing.T) {
		slept = nil

		calls := 0
		err := runWithRetry(spec, func() error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Empty(t, slept)
	})

	t.Run("falhas intermediárias esperam com backoff exponencial", func(t *testing.T) {
		slept = nil

		calls := 0
		err := runWithRetry(spec, func() error {
			calls++
			if calls < 3 {
				return errors.New("falha transitória")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		// base * 2^0, base * 2^1
		assert.Equal(t, []time.Duration{60 * time.Second, 120 * time.Second}, slept)
	})

	t.Run("esgotar as tentativas retorna o último erro", func(t *testing.T) {
		slept = nil

		lastErr := errors.New("falha permanente")
		calls := 0
		err := runWithRetry(spec, func() error {
			calls++
			return lastErr
		})

		assert.ErrorIs(t, err, lastErr)
		assert.Equal(t, spec.MaxAttempts, calls)
		assert.Len(t, slept, spec.MaxAttempts-1)
	})
}

func TestJobSpecExpired(t *testing.T) {
	reference := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	originalNow := nowFn
	nowFn = func() time.Time { return reference }
	defer func() { nowFn = originalNow }()

	spec := jobSpec{Name: "job_teste", Expiry: 60 * time.Second}

	tests := []struct {
		name     string
		firedAt  time.Time
		expected bool
	}{
		{
			name:     "disparo recente não expira",
			firedAt:  reference.Add(-30 * time.Second),
			expected: false,
		},
		{
			name:     "disparo exatamente na validade não expira",
			firedAt:  reference.Add(-60 * time.Second),
			expected: false,
		},
		{
			name:     "disparo além da validade expira",
			firedAt:  reference.Add(-61 * time.Second),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, spec.expired(tt.firedAt))
		})
	}
}

func TestJobSpecWithoutExpiryNeverExpires(t *testing.T) {
	spec := jobSpec{Name: "job_teste"}

	assert.False(t, spec.expired(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))
}
