package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig() *Config {
	return &Config{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
		JitterFactor: 0,
	}
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoWithAttempts_Exhaustion(t *testing.T) {
	wantErr := errors.New("still broken")
	attempts, err := DoWithAttempts(context.Background(), fastConfig(), func() error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected last error surfaced, got %v", err)
	}
	// MaxRetries=3 means 4 attempts total
	if attempts != 4 {
		t.Errorf("expected 4 attempts, got %d", attempts)
	}
}

type permanentErr struct{}

func (permanentErr) Error() string     { return "unauthorized" }
func (permanentErr) IsRetryable() bool { return false }

type transientErr struct{}

func (transientErr) Error() string     { return "service unavailable" }
func (transientErr) IsRetryable() bool { return true }

func TestDoWithAttempts_PermanentErrorNotRetried(t *testing.T) {
	calls := 0
	attempts, err := DoWithAttempts(context.Background(), fastConfig(), func() error {
		calls++
		return permanentErr{}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 || attempts != 1 {
		t.Errorf("expected exactly 1 attempt for permanent error, got calls=%d attempts=%d", calls, attempts)
	}
}

func TestDoWithAttempts_TransientErrorRetried(t *testing.T) {
	calls := 0
	_, err := DoWithAttempts(context.Background(), fastConfig(), func() error {
		calls++
		return transientErr{}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 4 {
		t.Errorf("expected 4 attempts for transient error, got %d", calls)
	}
}

func TestDo_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := &Config{
		MaxRetries:   5,
		InitialDelay: time.Hour, // would block forever without cancellation
		MaxDelay:     time.Hour,
		Multiplier:   2.0,
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := Do(ctx, cfg, func() error { return errors.New("transient") })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDoWithResult(t *testing.T) {
	calls := 0
	got, err := DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("transient")
		}
		return "transcript", nil
	})
	if err != nil {
		t.Fatalf("DoWithResult failed: %v", err)
	}
	if got != "transcript" {
		t.Errorf("expected result to be kept, got %q", got)
	}
}

func TestApplyJitter_Bounds(t *testing.T) {
	base := 100 * time.Millisecond
	for i := 0; i < 50; i++ {
		d := applyJitter(base, 0.1)
		if d < 90*time.Millisecond || d > 110*time.Millisecond {
			t.Fatalf("jittered delay %v outside +/-10%% of %v", d, base)
		}
	}
}

func TestApplyJitter_Disabled(t *testing.T) {
	base := 100 * time.Millisecond
	if d := applyJitter(base, 0); d != base {
		t.Errorf("expected no jitter, got %v", d)
	}
}

func TestDo_NilConfigUsesDefaults(t *testing.T) {
	err := Do(context.Background(), nil, func() error { return nil })
	if err != nil {
		t.Fatalf("Do with nil config failed: %v", err)
	}
}
