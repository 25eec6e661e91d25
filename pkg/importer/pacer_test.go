package importer

import (
	"context"
	"testing"
	"time"
)

func TestPacer_CountsWrites(t *testing.T) {
	pacer := NewPacer(0, 0, 0)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if err := pacer.RecordWritten(ctx); err != nil {
			t.Fatalf("RecordWritten failed: %v", err)
		}
	}
	if pacer.Written() != 7 {
		t.Errorf("Written = %d, want 7", pacer.Written())
	}
}

func TestPacer_BurstPauseEveryN(t *testing.T) {
	// Per-record delay is zero so only the burst pause is observable.
	pacer := NewPacer(0, 30*time.Millisecond, 3)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 6; i++ {
		if err := pacer.RecordWritten(ctx); err != nil {
			t.Fatalf("RecordWritten failed: %v", err)
		}
	}
	elapsed := time.Since(start)

	// Two burst pauses (after records 3 and 6)
	if elapsed < 55*time.Millisecond {
		t.Errorf("expected at least two burst pauses, elapsed %v", elapsed)
	}
}

func TestPacer_RecordDelayApplied(t *testing.T) {
	pacer := NewPacer(15*time.Millisecond, 0, 0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := pacer.RecordWritten(ctx); err != nil {
			t.Fatalf("RecordWritten failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("expected per-record delays to accumulate, elapsed %v", elapsed)
	}
}

func TestPacer_CancelledContext(t *testing.T) {
	pacer := NewPacer(time.Minute, 0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := pacer.RecordWritten(ctx); err == nil {
		t.Error("expected context error on cancelled run")
	}
}

func TestPacer_CancelDuringWait(t *testing.T) {
	pacer := NewPacer(time.Minute, 0, 0)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- pacer.RecordWritten(ctx)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("RecordWritten did not return after cancellation")
	}
}
