package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sharma-sugurthi/HealthAI/pkg"
)

// flakyClient fails a fixed number of times before succeeding.
type flakyClient struct {
	failures int
	calls    int
	err      error
}

func (f *flakyClient) Complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", f.err
	}
	return "ok", nil
}

func testPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}
}

func TestRetrier_SucceedsAfterTransientFailures(t *testing.T) {
	client := &flakyClient{failures: 2, err: errors.New("upstream 503")}
	r := NewRetrier(client, testPolicy(), zap.NewNop())

	text, err := r.Complete(context.Background(), "sys", "user", 100, 0.7)

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 3, client.calls)
}

func TestRetrier_FirstAttemptSuccessSkipsRetries(t *testing.T) {
	client := &flakyClient{}
	r := NewRetrier(client, testPolicy(), zap.NewNop())

	_, err := r.Complete(context.Background(), "sys", "user", 100, 0.7)

	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
}

func TestRetrier_ExhaustionYieldsServiceUnavailable(t *testing.T) {
	client := &flakyClient{failures: 10, err: errors.New("upstream down")}
	r := NewRetrier(client, testPolicy(), zap.NewNop())

	_, err := r.Complete(context.Background(), "sys", "user", 100, 0.7)

	require.Error(t, err)
	assert.ErrorIs(t, err, pkg.ErrServiceUnavailable)
	assert.Contains(t, err.Error(), "upstream down")
	assert.Equal(t, 3, client.calls)
}

func TestRetrier_ContextCancellationAbortsWait(t *testing.T) {
	client := &flakyClient{failures: 10, err: errors.New("upstream down")}
	r := NewRetrier(client, RetryPolicy{MaxAttempts: 3, BaseDelay: time.Minute}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := r.Complete(ctx, "sys", "user", 100, 0.7)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, client.calls, "cancellation must not trigger further attempts")
}

func TestRetryPolicy_LinearBackoff(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, BaseDelay: 2 * time.Second}

	assert.Equal(t, 2*time.Second, p.Backoff(1))
	assert.Equal(t, 4*time.Second, p.Backoff(2))
	assert.Equal(t, 6*time.Second, p.Backoff(3))
}

func TestNewRetrier_ClampsMaxAttempts(t *testing.T) {
	client := &flakyClient{failures: 10, err: errors.New("down")}
	r := NewRetrier(client, RetryPolicy{MaxAttempts: 0, BaseDelay: time.Millisecond}, zap.NewNop())

	_, err := r.Complete(context.Background(), "sys", "user", 100, 0.7)

	require.Error(t, err)
	assert.Equal(t, 1, client.calls)
}
