// Package prober implements the Reachability Prober (spec §4.4):
// lightweight, repeating, non-blocking TCP-connect liveness checks
// against a single host:port, reporting only state transitions (not
// every poll) to its owner. One instance watches the radio, a second
// watches the robot controller — two distinct callbacks rather than the
// source's sender-identity dispatch on a shared handler (design note
// §9).
package prober

import (
	"context"
	"net"
	"sync"
	"time"
)

// State is a reachability prober's observable socket state. Only
// Connected is treated as "alive" by the core.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	default:
		return "Disconnected"
	}
}

// Prober repeatedly dials target, reporting only transitions between
// Disconnected/Connecting/Connected to onTransition. The callback runs on
// the prober's own goroutine; per spec §5, the owner must marshal it onto
// the core's single event loop.
type Prober struct {
	mu           sync.Mutex
	conn         net.Conn
	state        State
	onTransition func(State)
	dialTimeout  time.Duration
}

// New constructs a Prober. dialTimeout bounds each connect attempt and
// should be comfortably shorter than the poll interval passed to Start.
func New(dialTimeout time.Duration, onTransition func(State)) *Prober {
	return &Prober{dialTimeout: dialTimeout, onTransition: onTransition, state: Disconnected}
}

// State returns the prober's current observed state.
func (p *Prober) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start runs the poll loop every interval until ctx is canceled, aborting
// any previously-established connection before each new dial attempt
// (spec §4.4). target is re-evaluated on every tick (not just once) so
// callers whose destination moves — the robot prober tracks the socket
// manager's current sweep candidate — don't need to restart the prober
// when it changes; an empty string is treated as "nothing to probe yet"
// and reported Disconnected without attempting to dial. Blocks until ctx
// is done; run it in its own goroutine.
func (p *Prober) Start(ctx context.Context, target func() string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.probeOnce(ctx, target())
	for {
		select {
		case <-ctx.Done():
			p.closeConn()
			return
		case <-ticker.C:
			p.probeOnce(ctx, target())
		}
	}
}

func (p *Prober) probeOnce(ctx context.Context, target string) {
	p.closeConn()

	if target == "" {
		p.setState(Disconnected)
		return
	}
	p.setState(Connecting)

	dialer := net.Dialer{Timeout: p.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		p.setState(Disconnected)
		return
	}

	p.mu.Lock()
	p.conn = conn
	p.mu.Unlock()
	p.setState(Connected)
}

func (p *Prober) closeConn() {
	p.mu.Lock()
	conn := p.conn
	p.conn = nil
	p.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

func (p *Prober) setState(s State) {
	p.mu.Lock()
	changed := p.state != s
	p.state = s
	p.mu.Unlock()

	if changed && p.onTransition != nil {
		p.onTransition(s)
	}
}
