// Package clock abstracts monotonic time and one-shot/periodic scheduling
// behind an interface, so the protocol core's cadence loops, watchdog, and
// e-stop auto-clear can be driven deterministically in tests instead of
// sleeping on the wall clock. No teacher package does this; it's the
// idiomatic Go seam for testing anything time-driven (the teacher reaches
// for bare time.Timer/time.After inline, which this generalizes into an
// injectable dependency).
package clock

import "time"

// Timer is a handle to a scheduled callback. Stop cancels it if it hasn't
// fired yet; Stop is safe to call more than once and after firing.
type Timer interface {
	Stop() bool
}

// Clock is the time source the protocol core depends on.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run once, after d elapses, on its own
	// goroutine.
	AfterFunc(d time.Duration, fn func()) Timer
}

// System is the real wall-clock implementation, a thin wrapper over the
// standard library.
type System struct{}

// New returns the real, wall-clock Clock.
func New() Clock { return System{} }

func (System) Now() time.Time { return time.Now() }

func (System) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
