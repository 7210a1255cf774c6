package core

import (
	"context"
	"time"
)

// FixedStep paces a loop at a steady number of steps per second. The first
// step is due immediately. A loop that falls behind by more than one step
// resumes from the current time instead of bursting to catch up.
type FixedStep struct {
	step time.Duration
	due  time.Time
	now  func() time.Time
}

// NewFixedStep returns a pacer for tps steps per second. Non-positive rates
// fall back to 60.
func NewFixedStep(tps int) *FixedStep {
	f := &FixedStep{now: time.Now}
	f.SetTPS(tps)
	return f
}

// SetTPS changes the step rate. The next deadline is kept.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the interval between steps.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether a step is due and, if so, consumes it.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.due.After(now) {
		return false
	}
	f.advance(now)
	return true
}

// Wait blocks until the next step is due or ctx is done.
func (f *FixedStep) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if remaining := f.due.Sub(f.now()); remaining > 0 {
		t := time.NewTimer(remaining)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	f.advance(f.now())
	return nil
}

func (f *FixedStep) advance(now time.Time) {
	if f.due.IsZero() || now.Sub(f.due) > f.step {
		f.due = now
	}
	f.due = f.due.Add(f.step)
}
