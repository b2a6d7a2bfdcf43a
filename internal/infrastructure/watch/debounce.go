// Package watch reloads the studio fixture when it changes on disk.
package watch

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid fixture events into a single callback
// invocation. Each trigger pushes the callback back by the window, but
// never past maxWait after the first trigger of a burst: an editor or
// sync tool rewriting the file in a tight loop must not starve the
// reload.
type Debouncer struct {
	window   time.Duration
	maxWait  time.Duration
	callback func()

	mu       sync.Mutex
	timer    *time.Timer
	deadline time.Time
}

// NewDebouncer creates a debouncer. maxWait bounds how long a burst of
// triggers can defer the callback; zero means unbounded.
func NewDebouncer(window, maxWait time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		window:   window,
		maxWait:  maxWait,
		callback: callback,
	}
}

// Trigger resets the debounce timer. The callback fires once the window
// elapses with no further triggers, or when the burst hits maxWait.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	if d.timer == nil && d.maxWait > 0 {
		d.deadline = now.Add(d.maxWait)
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	delay := d.window
	if d.maxWait > 0 {
		if remaining := d.deadline.Sub(now); remaining < delay {
			delay = remaining
		}
		if delay < 0 {
			delay = 0
		}
	}
	d.timer = time.AfterFunc(delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	d.deadline = time.Time{}
	d.mu.Unlock()
	d.callback()
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.deadline = time.Time{}
}
