// Package debounce delays an action until a burst of triggers has been quiet
// for a fixed window, running only the latest one.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recent triggered func after Wait of quiescence.
// A new Trigger cancels whatever is pending.
type Debouncer struct {
	mu      sync.Mutex
	clock   Clock
	wait    time.Duration
	timer   Timer
	gen     uint64
	stopped bool
}

// New returns a Debouncer with the given quiescence window.
// A nil clock means RealClock.
func New(wait time.Duration, clock Clock) *Debouncer {
	if clock == nil {
		clock = RealClock{}
	}
	return &Debouncer{clock: clock, wait: wait}
}

// Wait returns the quiescence window.
func (d *Debouncer) Wait() time.Duration { return d.wait }

// Trigger schedules f, replacing any pending call.
func (d *Debouncer) Trigger(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.wait, func() {
		d.mu.Lock()
		// A timer that lost the race with Stop or a newer Trigger is stale.
		if d.stopped || gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		f()
	})
}

// Cancel drops the pending call, if any. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels any pending call and ignores later triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
