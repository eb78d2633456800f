// Package watchdog implements spec §4.5: a resettable countdown whose
// expiry fires a callback. The protocol core restarts it on every
// successful robot packet decode and lets it expire to force a
// Full->Failing regression.
package watchdog

import (
	"sync"
	"time"

	"dspc/clock"
)

// Watchdog is a resettable countdown timer. All methods are safe for
// concurrent use; onFire is invoked on the clock's own callback
// goroutine, so implementations MUST marshal it onto the core's single
// event loop themselves (spec §5) — Watchdog does not do that for them.
type Watchdog struct {
	mu      sync.Mutex
	clock   clock.Clock
	timeout time.Duration
	timer   clock.Timer
	onFire  func()
}

// New constructs a Watchdog with the given initial timeout. onFire is
// called on expiry; it is never called after Stop.
func New(c clock.Clock, initialTimeout time.Duration, onFire func()) *Watchdog {
	return &Watchdog{clock: c, timeout: initialTimeout, onFire: onFire}
}

// SetTimeout changes the duration used by the next Restart. It does not
// itself re-arm a running timer.
func (w *Watchdog) SetTimeout(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.timeout = d
}

// Restart stops any pending expiry and arms a fresh one using the
// current timeout.
func (w *Watchdog) Restart() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = w.clock.AfterFunc(w.timeout, w.onFire)
}

// Stop cancels any pending expiry without re-arming.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Timeout returns the currently configured duration.
func (w *Watchdog) Timeout() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timeout
}
