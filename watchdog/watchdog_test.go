package watchdog

import (
	"testing"
	"time"

	"dspc/clock"
)

func TestWatchdogFiresAfterTimeout(t *testing.T) {
	fake := clock.NewFake()
	fired := 0
	w := New(fake, 500*time.Millisecond, func() { fired++ })

	w.Restart()
	fake.Advance(499 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("expected no fire before timeout, got %d", fired)
	}
	fake.Advance(1 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected 1 fire at timeout, got %d", fired)
	}
}

func TestWatchdogRestartDefersExpiry(t *testing.T) {
	fake := clock.NewFake()
	fired := 0
	w := New(fake, 500*time.Millisecond, func() { fired++ })

	w.Restart()
	fake.Advance(400 * time.Millisecond)
	w.Restart() // restart before expiry should push the deadline out again
	fake.Advance(400 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("expected no fire, restart should have deferred it, got %d", fired)
	}
	fake.Advance(100 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected fire after the restarted deadline, got %d", fired)
	}
}

func TestWatchdogStopPreventsFire(t *testing.T) {
	fake := clock.NewFake()
	fired := 0
	w := New(fake, 100*time.Millisecond, func() { fired++ })
	w.Restart()
	w.Stop()
	fake.Advance(200 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("expected no fire after Stop, got %d", fired)
	}
}

func TestWatchdogSetTimeoutAppliesOnNextRestart(t *testing.T) {
	fake := clock.NewFake()
	fired := 0
	w := New(fake, 500*time.Millisecond, func() { fired++ })
	w.SetTimeout(1000 * time.Millisecond)
	w.Restart()
	fake.Advance(500 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("expected the new 1000ms timeout to apply, got fire at 500ms")
	}
	fake.Advance(500 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected fire at 1000ms, got %d fires", fired)
	}
}
