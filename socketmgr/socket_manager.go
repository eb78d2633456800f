// Package socketmgr is the Socket Manager (spec §4.2): owns the four UDP
// endpoints (FMS in/out, robot in/out), runs their receive loops, and
// sweeps the robot output endpoint across candidate addresses, one step
// per Advance call; the sweep does not stop on its own when a datagram
// decodes (only PinAddress fixes the destination). Grounded on the teacher's Start(ctx)/accept-loop/graceful-
// shutdown idiom (tcp_server.go, http_server.go), adapted from TCP
// accept loops to UDP receive loops.
package socketmgr

import (
	"context"
	"fmt"
	"net"
	"sync"

	"dspc/logging"
)

const maxDatagramSize = 4096

// Manager owns the four UDP sockets and the robot-address sweep cursor.
type Manager struct {
	onRobotPacket func([]byte)
	onFMSPacket   func([]byte)

	mu       sync.Mutex
	fmsIn    *net.UDPConn
	robotIn  *net.UDPConn
	fmsOutPort   int
	robotOutPort int

	robotIPs     []string
	cursor       int
	scannerCount int
	pinnedAddr   string // non-empty once set_robot_address pins the target
}

// New constructs a Manager. onRobotPacket/onFMSPacket are invoked once
// per inbound datagram on their respective receive loop's own goroutine;
// per spec §5, the core must marshal them onto its single event loop.
func New(onRobotPacket, onFMSPacket func([]byte)) *Manager {
	return &Manager{
		onRobotPacket: onRobotPacket,
		onFMSPacket:   onFMSPacket,
		scannerCount:  1,
	}
}

// Configure binds the two inbound UDP listeners and records the two
// outbound ports, per the adapter's reported port configuration (spec
// §6). Call once per adapter installation, before Start.
func (m *Manager) Configure(fmsInPort, fmsOutPort, robotInPort, robotOutPort int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	fmsIn, err := net.ListenUDP("udp", &net.UDPAddr{Port: fmsInPort})
	if err != nil {
		return fmt.Errorf("socketmgr: bind fms_in: %w", err)
	}
	robotIn, err := net.ListenUDP("udp", &net.UDPAddr{Port: robotInPort})
	if err != nil {
		fmsIn.Close()
		return fmt.Errorf("socketmgr: bind robot_in: %w", err)
	}

	m.fmsIn = fmsIn
	m.robotIn = robotIn
	m.fmsOutPort = fmsOutPort
	m.robotOutPort = robotOutPort
	return nil
}

// Start runs both receive loops until ctx is canceled. Call after
// Configure succeeds; blocks, so run it in its own goroutine.
func (m *Manager) Start(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		m.receiveLoop(ctx, m.fmsIn, m.onFMSPacket)
	}()
	go func() {
		defer wg.Done()
		m.receiveLoop(ctx, m.robotIn, m.onRobotPacket)
	}()

	wg.Wait()
}

func (m *Manager) receiveLoop(ctx context.Context, conn *net.UDPConn, dispatch func([]byte)) {
	if conn == nil {
		return
	}
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	buf := make([]byte, maxDatagramSize)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				logging.Print("socketmgr: receive error: %v", err)
				return
			}
		}
		if dispatch != nil {
			data := make([]byte, n)
			copy(data, buf[:n])
			dispatch(data)
		}
	}
}

// SendRobot transmits data to the current sweep target (or the pinned
// address, if set_robot_address pinned one). Transient send failures are
// swallowed (spec §7: "transient network" errors recover via the cadence
// loop and sweep, never surfaced to callers).
func (m *Manager) SendRobot(data []byte) {
	target := m.RobotAddress()
	if target == "" {
		return
	}
	m.send(target, m.robotOutPort, data)
}

// SendFMS transmits data to the FMS output port on the loopback/local
// address (the FMS link is not swept; it's expected to be a static field
// network peer reachable at the configured port).
func (m *Manager) SendFMS(data []byte) {
	m.send("127.0.0.1", m.fmsOutPort, data)
}

func (m *Manager) send(host string, port int, data []byte) {
	addr := &net.UDPAddr{IP: net.ParseIP(host), Port: port}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		logging.Print("socketmgr: dial %s:%d failed: %v", host, port, err)
		return
	}
	defer conn.Close()
	if _, err := conn.Write(data); err != nil {
		logging.Print("socketmgr: send to %s:%d failed: %v", host, port, err)
	}
}

// RefreshIPs replaces the candidate robot-address list and resets the
// sweep cursor to the start (spec §4.2: "refresh_ips() resets the cursor
// and begins stepping").
func (m *Manager) RefreshIPs(ips []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.robotIPs = ips
	m.cursor = 0
}

// SetScannerCount configures how many candidates are dwelt on per sweep
// step (spec §4.2). Values below 1 are clamped to 1.
func (m *Manager) SetScannerCount(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n < 1 {
		n = 1
	}
	m.scannerCount = n
}

// Advance steps the sweep cursor forward by one dwell (one candidate, or
// scanner_count candidates under parallel probing), called once per
// sender tick or on every watchdog-driven reset (spec §4.2). A no-op if
// the target is pinned.
func (m *Manager) Advance() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pinnedAddr != "" || len(m.robotIPs) == 0 {
		return
	}
	m.cursor = (m.cursor + m.scannerCount) % len(m.robotIPs)
}

// PinAddress bypasses the sweep, fixing the robot destination to addr
// (spec §4.1 set_robot_address). Passing "" unpins and resumes sweeping
// from the current cursor.
func (m *Manager) PinAddress(addr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pinnedAddr = addr
}

// RobotAddress returns the pinned address if one is set, otherwise the
// candidate currently under the sweep cursor, or "" if there is nothing
// to target yet (spec §4.2).
func (m *Manager) RobotAddress() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pinnedAddr != "" {
		return m.pinnedAddr
	}
	if len(m.robotIPs) == 0 {
		return ""
	}
	return m.robotIPs[m.cursor%len(m.robotIPs)]
}

// Close tears down the bound listeners. Safe to call even if Configure
// was never called.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fmsIn != nil {
		m.fmsIn.Close()
	}
	if m.robotIn != nil {
		m.robotIn.Close()
	}
}
