package importer

import (
	"context"
	"time"
)

// Pacer throttles the write stream of an import run so a large legacy export
// does not saturate the entity store. After every record it sleeps for the
// per-record delay, and every BurstSize records it takes a longer burst
// pause instead. Delays respect context cancellation.
type Pacer struct {
	recordDelay time.Duration
	burstPause  time.Duration
	burstSize   int

	written int
}

// NewPacer builds a pacer. A burstSize of zero disables burst pauses; zero
// delays make the corresponding waits no-ops, which tests rely on.
func NewPacer(recordDelay, burstPause time.Duration, burstSize int) *Pacer {
	return &Pacer{
		recordDelay: recordDelay,
		burstPause:  burstPause,
		burstSize:   burstSize,
	}
}

// RecordWritten notes one completed write and applies the appropriate delay.
// It returns early with the context's error if the run is cancelled mid-wait.
func (p *Pacer) RecordWritten(ctx context.Context) error {
	p.written++

	delay := p.recordDelay
	if p.burstSize > 0 && p.written%p.burstSize == 0 {
		delay = p.burstPause
	}
	return p.wait(ctx, delay)
}

// Written reports how many records the pacer has seen.
func (p *Pacer) Written() int {
	return p.written
}

func (p *Pacer) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
