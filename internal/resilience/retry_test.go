package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     1.0,
	}
}

func TestDoValSucceedsFirstTry(t *testing.T) {
	calls := 0
	val, err := DoVal(context.Background(), fastRetryConfig(3), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 1, calls)
}

func TestDoValRetriesTransient(t *testing.T) {
	calls := 0
	val, err := DoVal(context.Background(), fastRetryConfig(3), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", NewTransientError(eris.New("overloaded"), 529)
		}
		return "recovered", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "recovered", val)
	assert.Equal(t, 3, calls)
}

func TestDoValStopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := eris.New("invalid request")
	_, err := DoVal(context.Background(), fastRetryConfig(3), func(ctx context.Context) (string, error) {
		calls++
		return "", permanent
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoValExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := DoVal(context.Background(), fastRetryConfig(2), func(ctx context.Context) (string, error) {
		calls++
		return "", NewTransientError(eris.New("timeout"), 504)
	})

	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoValContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := DoVal(ctx, fastRetryConfig(5), func(ctx context.Context) (string, error) {
		calls++
		cancel()
		return "", NewTransientError(eris.New("i/o timeout"), 0)
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"wrapped transient", NewTransientError(eris.New("x"), 503), true},
		{"rate limit message", eris.New("api error: rate limit exceeded"), true},
		{"overloaded message", eris.New("anthropic: overloaded_error"), true},
		{"permanent", eris.New("invalid api key"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
