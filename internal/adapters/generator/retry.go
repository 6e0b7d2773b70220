package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"sotorbot/internal/core/domain"
)

// RetryPolicy bounds generation attempts. Timeout applies per attempt,
// not to the whole call.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Timeout        time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		InitialBackoff: 2 * time.Second,
		MaxBackoff:     10 * time.Second,
		Timeout:        45 * time.Second,
	}
}

// generateWithRetry runs call until it succeeds, fails permanently or
// the attempts run out. Exhaustion wraps ErrBackendUnavailable so
// handlers can show a friendly message.
func generateWithRetry(ctx context.Context, policy RetryPolicy, retryable func(error) bool,
	call func(context.Context) (string, error)) (string, error) {
	backoff := policy.InitialBackoff

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, policy.Timeout)
		text, err := call(attemptCtx)
		cancel()

		if err == nil {
			if attempt > 1 {
				log.Ctx(ctx).Info().Int("attempt", attempt).Msg("generation recovered after retry")
			}
			return text, nil
		}

		if !retryable(err) {
			return "", err
		}

		lastErr = err
		if attempt < policy.MaxAttempts {
			log.Ctx(ctx).Warn().Err(err).Int("attempt", attempt).Dur("backoff", backoff).Msg("generation failed, retrying")

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}

			backoff = min(backoff*2, policy.MaxBackoff)
		}
	}

	return "", fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, lastErr)
}
