// Package packetlog is a fixed-size capture ring of recent inbound and
// outbound datagrams, compressed with snappy, for post-session replay
// and diagnostics. Grounded on the teacher's "wrap a resource, swallow
// non-critical errors" idiom (shared.SafeClose/utils.SafeClose) — a
// capture failure is a diagnostics-only concern and must never affect
// the packet it's capturing.
package packetlog

import (
	"sync"
	"time"

	"github.com/golang/snappy"

	"dspc/logging"
)

// Direction distinguishes inbound telemetry from outbound control
// datagrams in a captured Entry.
type Direction string

const (
	Inbound  Direction = "inbound"
	Outbound Direction = "outbound"
)

// Channel distinguishes the robot link from the FMS link.
type Channel string

const (
	RobotChannel Channel = "robot"
	FMSChannel   Channel = "fms"
)

// Entry is one captured datagram, stored snappy-compressed; Decompress
// returns the original bytes.
type Entry struct {
	At         time.Time
	Direction  Direction
	Channel    Channel
	Compressed []byte
	RawLen     int
}

// Decompress returns the entry's original, uncompressed payload.
func (e Entry) Decompress() ([]byte, error) {
	return snappy.Decode(nil, e.Compressed)
}

// Ring is a fixed-capacity, overwrite-oldest capture buffer safe for
// concurrent writers (the socket manager's two receive loops and the
// core's two cadence loops) and readers (the HTTP diagnostics endpoint).
type Ring struct {
	mu       sync.Mutex
	entries  []Entry
	next     int
	filled   bool
	capacity int
}

// New returns an empty Ring holding at most capacity entries.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{entries: make([]Entry, capacity), capacity: capacity}
}

// Capture compresses and appends one datagram, overwriting the oldest
// entry once the ring is full. snappy.Encode has no failure path, so
// every datagram passed in is stored.
func (r *Ring) Capture(dir Direction, ch Channel, data []byte) {
	compressed := snappy.Encode(nil, data)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = Entry{
		At:         time.Now(),
		Direction:  dir,
		Channel:    ch,
		Compressed: compressed,
		RawLen:     len(data),
	}
	r.next = (r.next + 1) % r.capacity
	if r.next == 0 {
		r.filled = true
	}
	logging.Print("packetlog: captured %s %s datagram (%d bytes)", ch, dir, len(data))
}

// Snapshot returns the captured entries in oldest-to-newest order.
func (r *Ring) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.filled {
		out := make([]Entry, r.next)
		copy(out, r.entries[:r.next])
		return out
	}

	out := make([]Entry, r.capacity)
	copy(out, r.entries[r.next:])
	copy(out[r.capacity-r.next:], r.entries[:r.next])
	return out
}
