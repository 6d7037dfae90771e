// Package watch re-runs a callback when a single file changes on disk.
package watch

import (
	"sync"
	"sync/atomic"
	"time"
)

// Debouncer collapses a burst of triggers into one call made after the burst
// has been quiet for the window. Calls never overlap, and none start after Stop.
type Debouncer struct {
	window time.Duration
	fn     func()

	mu      sync.Mutex
	timer   *time.Timer
	running sync.Mutex
	stopped atomic.Bool
}

func NewDebouncer(window time.Duration, fn func()) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Trigger (re)starts the quiet window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped.Load() {
		return
	}
	if d.timer == nil {
		d.timer = time.AfterFunc(d.window, d.fire)
		return
	}
	d.timer.Reset(d.window)
}

func (d *Debouncer) fire() {
	d.running.Lock()
	defer d.running.Unlock()

	if d.stopped.Load() {
		return
	}
	d.fn()
}

// Stop drops a pending call and waits for a running one to return.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped.Store(true)
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	d.running.Lock()
	defer d.running.Unlock()
}
