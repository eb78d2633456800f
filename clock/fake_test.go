package clock

import (
	"testing"
	"time"
)

func TestFakeAdvanceFiresDueTimers(t *testing.T) {
	f := NewFake()
	fired := []string{}

	f.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "a") })
	f.AfterFunc(50*time.Millisecond, func() { fired = append(fired, "b") })
	f.AfterFunc(200*time.Millisecond, func() { fired = append(fired, "c") })

	f.Advance(100 * time.Millisecond)

	if len(fired) != 2 || fired[0] != "b" || fired[1] != "a" {
		t.Fatalf("expected [b a], got %v", fired)
	}

	f.Advance(100 * time.Millisecond)
	if len(fired) != 3 || fired[2] != "c" {
		t.Fatalf("expected c to fire on second advance, got %v", fired)
	}
}

func TestFakeTimerStopPreventsFiring(t *testing.T) {
	f := NewFake()
	fired := false
	timer := f.AfterFunc(10*time.Millisecond, func() { fired = true })
	timer.Stop()
	f.Advance(20 * time.Millisecond)

	if fired {
		t.Fatal("expected stopped timer not to fire")
	}
}
