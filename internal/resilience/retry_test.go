package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) Policy {
	return Policy{
		Attempts:  attempts,
		BaseDelay: time.Millisecond,
		MaxDelay:  2 * time.Millisecond,
		Factor:    1.0,
		Jitter:    0,
	}
}

func TestDoValSucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	val, err := DoVal(context.Background(), fastPolicy(3), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", MarkTransient(eris.New("flaky"))
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 3, calls)
}

func TestDoValStopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := DoVal(context.Background(), fastPolicy(5), func(ctx context.Context) (int, error) {
		calls++
		return 0, eris.New("permanent")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls, "permanent errors must not be retried")
}

func TestDoValExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := DoVal(context.Background(), fastPolicy(3), func(ctx context.Context) (int, error) {
		calls++
		return 0, MarkTransient(eris.New("still down"))
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, fastPolicy(10), func(ctx context.Context) error {
		calls++
		cancel()
		return MarkTransient(eris.New("down"))
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestCustomRetryable(t *testing.T) {
	p := fastPolicy(3)
	p.Retryable = func(err error) bool { return err.Error() == "retry-me" }

	calls := 0
	err := Do(context.Background(), p, func(ctx context.Context) error {
		calls++
		return eris.New("retry-me")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}
