// Package input is the Input Aggregator (spec §4.6): a snapshot-consistent
// view of attached joysticks that the protocol core's robot-packet
// encoder reads once per tick. Re-architected per design note §9 as an
// explicit collaborator (constructed and injected, not a process-wide
// singleton like the source's device manager), so tests can hand the
// core a fake with scripted devices.
package input

import "sync"

// Joystick is one device's current snapshot: axis values in [-1, 1]
// (sign preserved) and button states, in stable logical-id order.
type Joystick struct {
	ID      int
	Axes    []float64
	Buttons []bool
}

type device struct {
	rawIndex int
	attachAt int // tracker value at the moment this device was attached
	axes     []float64
	buttons  []bool
}

// Aggregator tracks attached devices and renumbers them on hot-plug using
// the dynamic-id scheme from spec §4.6, retained verbatim from
// original_source/src/sources/GamepadManager.cpp for wire compatibility:
// logical id = |tracker - (raw_index + 1)|, clamped below the current
// device count.
type Aggregator struct {
	mu      sync.RWMutex
	tracker int
	devices map[int]*device // keyed by raw device index
}

// NewAggregator returns an empty Aggregator with no attached devices.
func NewAggregator() *Aggregator {
	return &Aggregator{devices: make(map[int]*device)}
}

// Attach registers a newly-connected device at rawIndex with the given
// axis/button counts, bumping the attach tracker. Re-attaching an
// already-known rawIndex replaces its prior state.
func (a *Aggregator) Attach(rawIndex, axisCount, buttonCount int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tracker++
	a.devices[rawIndex] = &device{
		rawIndex: rawIndex,
		attachAt: a.tracker,
		axes:     make([]float64, axisCount),
		buttons:  make([]bool, buttonCount),
	}
}

// Detach removes rawIndex. Unknown indices are a no-op (hot-unplug races
// are expected, not errors).
func (a *Aggregator) Detach(rawIndex int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.devices, rawIndex)
}

// UpdateAxis sets one axis value for rawIndex, clamped to [-1, 1].
// Unknown (rawIndex, axisIndex) pairs are ignored.
func (a *Aggregator) UpdateAxis(rawIndex, axisIndex int, value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.devices[rawIndex]
	if !ok || axisIndex < 0 || axisIndex >= len(d.axes) {
		return
	}
	if value > 1.0 {
		value = 1.0
	} else if value < -1.0 {
		value = -1.0
	}
	d.axes[axisIndex] = value
}

// UpdateButton sets one button state for rawIndex. Unknown pairs are
// ignored.
func (a *Aggregator) UpdateButton(rawIndex, buttonIndex int, pressed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.devices[rawIndex]
	if !ok || buttonIndex < 0 || buttonIndex >= len(d.buttons) {
		return
	}
	d.buttons[buttonIndex] = pressed
}

// Count returns the number of currently-attached devices.
func (a *Aggregator) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.devices)
}

// Snapshot returns every attached device's current state, ordered by
// logical id, read-coherent at the instant of the call (spec §5: encoders
// receive a read-only snapshot, never a live view).
func (a *Aggregator) Snapshot() []Joystick {
	a.mu.RLock()
	defer a.mu.RUnlock()

	count := len(a.devices)
	slots := make([]*device, count)
	overflow := []*device{}

	for _, d := range orderedByRawIndex(a.devices) {
		id := LogicalID(a.tracker, d.rawIndex, count)
		if id >= 0 && id < count && slots[id] == nil {
			slots[id] = d
		} else {
			overflow = append(overflow, d)
		}
	}

	// Fill any slot left empty by a collision with an overflowed device,
	// in raw-index order, so every attached device still appears exactly
	// once even though the formula doesn't guarantee a perfect bijection.
	for _, d := range overflow {
		for i, s := range slots {
			if s == nil {
				slots[i] = d
				break
			}
		}
	}

	out := make([]Joystick, count)
	for i, d := range slots {
		if d == nil {
			continue
		}
		out[i] = Joystick{
			ID:      i,
			Axes:    append([]float64(nil), d.axes...),
			Buttons: append([]bool(nil), d.buttons...),
		}
	}
	return out
}

// LogicalID implements spec §4.6's hot-plug id remap exactly as
// GamepadManager.cpp had it, retained verbatim for wire compatibility:
// id = tracker - (raw_index + 1); if negative, take the absolute value;
// if the result is still >= count, clamp it to count - 1. Two devices
// can still map to the same id, which Snapshot's collision-filling pass
// resolves.
func LogicalID(tracker, rawIndex, count int) int {
	if count <= 0 {
		return 0
	}
	id := tracker - (rawIndex + 1)
	if id < 0 {
		id = -id
	}
	if id >= count {
		id = count - 1
	}
	return id
}

func orderedByRawIndex(devices map[int]*device) []*device {
	out := make([]*device, 0, len(devices))
	for _, d := range devices {
		out = append(out, d)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].rawIndex > out[j].rawIndex; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
