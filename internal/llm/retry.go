package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sharma-sugurthi/HealthAI/pkg"
)

// RetryPolicy bounds the completion retry loop.  The delay grows linearly:
// BaseDelay after the first failure, 2*BaseDelay after the second, and so on.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Backoff returns the delay to sleep after the given 1-based attempt.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return p.BaseDelay * time.Duration(attempt)
}

// Retrier wraps a Client with the bounded retry policy.  Only the external
// completion call is retried; exhausting the policy yields
// pkg.ErrServiceUnavailable so callers can substitute a fixed message.
type Retrier struct {
	client Client
	policy RetryPolicy
	log    *zap.Logger
}

// NewRetrier constructs a retrying completion client.
func NewRetrier(client Client, policy RetryPolicy, log *zap.Logger) *Retrier {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &Retrier{client: client, policy: policy, log: log}
}

// Complete calls the wrapped client, retrying on failure with linear backoff.
// Cancellation of ctx aborts the wait between attempts.
func (r *Retrier) Complete(ctx context.Context, systemInstruction, userMessage string, maxTokens int, temperature float32) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		text, err := r.client.Complete(ctx, systemInstruction, userMessage, maxTokens, temperature)
		if err == nil {
			return text, nil
		}
		lastErr = err
		r.log.Warn("completion attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.policy.MaxAttempts),
			zap.Error(err))

		if attempt == r.policy.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.policy.Backoff(attempt)):
		}
	}
	return "", fmt.Errorf("%w: %v", pkg.ErrServiceUnavailable, lastErr)
}
