package watch

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(50*time.Millisecond, 0, func() {
		calls.Add(1)
	})
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("callback fired %d times, want 1", got)
	}
}

func TestDebouncer_FiresAgainAfterQuiet(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, 0, func() {
		calls.Add(1)
	})
	defer d.Stop()

	d.Trigger()
	time.Sleep(60 * time.Millisecond)
	d.Trigger()
	time.Sleep(60 * time.Millisecond)

	if got := calls.Load(); got != 2 {
		t.Fatalf("callback fired %d times, want 2", got)
	}
}

// A writer that never goes quiet still gets a callback by maxWait.
func TestDebouncer_MaxWaitBoundsBurst(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(40*time.Millisecond, 120*time.Millisecond, func() {
		calls.Add(1)
	})
	defer d.Stop()

	// Re-trigger faster than the window for well past maxWait.
	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		d.Trigger()
		time.Sleep(10 * time.Millisecond)
	}

	if got := calls.Load(); got < 1 {
		t.Fatalf("callback never fired during a continuous burst")
	}
}

func TestDebouncer_Stop(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, 0, func() {
		calls.Add(1)
	})

	d.Trigger()
	d.Stop()
	time.Sleep(60 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Fatalf("callback fired %d times after Stop, want 0", got)
	}
}
