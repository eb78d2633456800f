package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually-advanced Clock for deterministic tests of
// cadence loops, the watchdog, and e-stop auto-clear.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	pending []*fakeTimer
	seq     int
}

// NewFake returns a Fake clock starting at an arbitrary fixed epoch.
func NewFake() *Fake {
	return &Fake{now: time.Unix(0, 0)}
}

type fakeTimer struct {
	at      time.Time
	fn      func()
	seq     int // tie-break: insertion order for same-instant timers
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasPending := !t.stopped
	t.stopped = true
	return wasPending
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTimer{at: f.now.Add(d), fn: fn, seq: f.seq}
	f.pending = append(f.pending, t)
	return t
}

// Advance moves the clock forward by d, synchronously firing (in
// chronological, then insertion, order) every timer whose deadline falls
// at or before the new time. Timers scheduled by those callbacks are not
// fired by the same call, even if already due; a later Advance fires
// them. Callbacks run on the caller's goroutine, so
// callers that mutate shared state from those callbacks must do so the
// same way the real Clock would require (marshaled onto the core's loop).
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	target := f.now

	due := make([]*fakeTimer, 0, len(f.pending))
	remaining := f.pending[:0:0]
	for _, t := range f.pending {
		if t.stopped {
			continue
		}
		if !t.at.After(target) {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	f.pending = remaining
	f.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})

	for _, t := range due {
		if !t.stopped {
			t.fn()
		}
	}
}
