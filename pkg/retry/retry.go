package retry

import (
	"context"
	"math/rand"
	"time"
)

// Config defines retry behavior with exponential backoff.
type Config struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	JitterFactor float64 // 0.0-1.0, default 0.1 for +/-10% jitter to prevent thundering herd
}

// DefaultConfig returns sensible defaults for outbound HTTP calls:
// 3 retries with 100ms initial delay, capped at 5s, doubling each time, with 10% jitter.
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:   3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}
}

// RetryableError is an interface for errors that explicitly declare their
// retryability. The transcription provider errors implement this so the retry
// loop never wastes attempts on permanent failures (e.g. a bad API key).
type RetryableError interface {
	error
	IsRetryable() bool
}

// applyJitter adds random jitter to a delay to prevent thundering herd.
// Jitter is calculated as: delay +/- (delay * jitterFactor * random(-1 to +1))
func applyJitter(delay time.Duration, jitterFactor float64) time.Duration {
	if jitterFactor <= 0 {
		return delay
	}
	jitter := float64(delay) * jitterFactor * (rand.Float64()*2 - 1)
	return time.Duration(float64(delay) + jitter)
}

// Do executes fn with exponential backoff retry logic.
// Returns nil on success, or the last error after all retries are exhausted.
// Respects context cancellation during wait periods.
func Do(ctx context.Context, cfg *Config, fn func() error) error {
	_, err := DoWithAttempts(ctx, cfg, fn)
	return err
}

// DoWithAttempts is Do, but also reports how many attempts were made.
// Callers that must surface "failed after N attempts" use this form.
//
// If fn returns an error implementing RetryableError with IsRetryable() ==
// false, the loop stops immediately and that error is returned with the
// attempt count so far.
func DoWithAttempts(ctx context.Context, cfg *Config, fn func() error) (int, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var lastErr error
	delay := cfg.InitialDelay
	attempts := 0

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		attempts++
		err := fn()
		if err == nil {
			return attempts, nil
		}
		lastErr = err

		// Permanent errors exit immediately
		if r, ok := err.(RetryableError); ok && !r.IsRetryable() {
			return attempts, err
		}

		if attempt < cfg.MaxRetries {
			select {
			case <-time.After(applyJitter(delay, cfg.JitterFactor)):
				delay = time.Duration(float64(delay) * cfg.Multiplier)
				if delay > cfg.MaxDelay {
					delay = cfg.MaxDelay
				}
			case <-ctx.Done():
				return attempts, ctx.Err()
			}
		}
	}

	return attempts, lastErr
}

// DoWithResult executes fn and returns both result and error.
// Useful for functions that return values (like pgxpool.New).
// Respects context cancellation during wait periods.
func DoWithResult[T any](ctx context.Context, cfg *Config, fn func() (T, error)) (T, error) {
	var result T
	_, err := DoWithAttempts(ctx, cfg, func() error {
		r, ferr := fn()
		if ferr == nil {
			result = r
		}
		return ferr
	})
	return result, err
}
