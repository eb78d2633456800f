package core

import (
	"context"
	"fmt"
	"time"

	"dspc/adapter"
	"dspc/clock"
	"dspc/dserrors"
	"dspc/eventbus"
	"dspc/input"
	"dspc/logging"
	"dspc/prober"
	"dspc/socketmgr"
	"dspc/watchdog"
)

const proberDialTimeout = 150 * time.Millisecond

// command is one closure queued onto the core's actor loop, plus the
// channel its sender blocks on until the loop has run it. This gives
// every public mutator synchronous, serialized, lock-free semantics from
// the caller's point of view while still funneling all writes through a
// single goroutine (spec §5).
type command struct {
	fn   func(*ProtocolCore)
	done chan struct{}
}

// New validates adapterImpl's reported configuration and wires a
// ProtocolCore around it. It does not start anything; call Run to begin
// the actor loop, the initialization ceremony, and the socket/prober
// goroutines.
func New(adapterImpl adapter.Adapter, eb eventbus.EventBus, clk clock.Clock, agg *input.Aggregator) (*ProtocolCore, error) {
	if adapterImpl.FMSHz() <= 0 || adapterImpl.RobotHz() <= 0 {
		return nil, fmt.Errorf("%w: fms_hz/robot_hz must be positive", dserrors.ErrBadConfig)
	}
	ports := []int{
		adapterImpl.FMSInputPort(), adapterImpl.FMSOutputPort(),
		adapterImpl.RobotInputPort(), adapterImpl.RobotOutputPort(),
		adapterImpl.TCPProbePort(),
	}
	for _, p := range ports {
		if p <= 0 {
			return nil, fmt.Errorf("%w: all ports must be positive", dserrors.ErrBadConfig)
		}
	}

	c := &ProtocolCore{
		adapter:     adapterImpl,
		eb:          eb,
		clk:         clk,
		agg:         agg,
		commands:    make(chan command, 64),
		controlMode: Invalid,
		alliance:    Red1,
		commStatus:  Failing,
		voltageStr:  "00.00",
	}

	c.sock = socketmgr.New(c.onRobotDatagram, c.onFMSDatagram)
	if err := c.sock.Configure(
		adapterImpl.FMSInputPort(), adapterImpl.FMSOutputPort(),
		adapterImpl.RobotInputPort(), adapterImpl.RobotOutputPort(),
	); err != nil {
		return nil, err
	}

	c.watchdog = watchdog.New(clk, watchdogTimeoutFailing, c.onWatchdogFired)
	c.radioProber = prober.New(proberDialTimeout, c.onRadioTransition)
	c.robotProber = prober.New(proberDialTimeout, c.onRobotTransition)

	return c, nil
}

// Run starts the actor loop, the socket manager's receive loops, both
// probers, and the initialization ceremony (spec §4.7). It returns once
// every background goroutine has been launched; it does not block.
// Everything it starts stops when ctx is canceled.
func (c *ProtocolCore) Run(ctx context.Context) {
	go c.loop(ctx)
	go c.sock.Start(ctx)
	go c.radioProber.Start(ctx, c.radioProbeTarget, 250*time.Millisecond)
	go c.robotProber.Start(ctx, c.robotProbeTarget, 250*time.Millisecond)

	c.watchdog.Restart()

	c.clk.AfterFunc(resetCeremonyDelay, func() {
		c.enqueue(func(c *ProtocolCore) { c.resetInternal() })
	})
	c.clk.AfterFunc(initializeCeremonyDelay, func() {
		c.enqueue(func(c *ProtocolCore) { c.initializeInternal() })
	})
}

// Close releases the bound UDP sockets. Safe to call whether or not Run
// was ever called.
func (c *ProtocolCore) Close() {
	c.sock.Close()
}

func (c *ProtocolCore) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cm := <-c.commands:
			cm.fn(c)
			close(cm.done)
		}
	}
}

// enqueue runs fn on the actor loop and blocks until it has completed.
// Safe to call from any goroutine except the loop goroutine itself.
func (c *ProtocolCore) enqueue(fn func(*ProtocolCore)) {
	done := make(chan struct{})
	c.commands <- command{fn: fn, done: done}
	<-done
}

func (c *ProtocolCore) radioProbeTarget() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.radioIPs) == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.radioIPs[0], c.adapter.TCPProbePort())
}

func (c *ProtocolCore) robotProbeTarget() string {
	target := c.sock.RobotAddress()
	if target == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", target, c.adapter.TCPProbePort())
}

// ---- Public, caller-synchronous mutators ---------------------------------

// Start flips operating to true. Cadence loops begin emitting again on
// their next tick.
func (c *ProtocolCore) Start() {
	c.enqueue(func(c *ProtocolCore) {
		c.mu.Lock()
		c.operating = true
		c.mu.Unlock()
	})
}

// Stop flips operating to false. Cadence timers keep running but stop
// emitting (spec §4.1: "stopping does not cancel timers, it silences
// emissions").
func (c *ProtocolCore) Stop() {
	c.enqueue(func(c *ProtocolCore) {
		c.mu.Lock()
		c.operating = false
		c.mu.Unlock()
	})
}

// Reset runs the reset path synchronously; idempotent.
func (c *ProtocolCore) Reset() {
	c.enqueue(func(c *ProtocolCore) { c.resetInternal() })
}

// SetTeam updates the team number and regenerates the candidate IP
// lists on every call, whether or not the team changed (spec P1/P2);
// team_changed is published only on an actual change.
func (c *ProtocolCore) SetTeam(team int) {
	c.enqueue(func(c *ProtocolCore) { c.setTeamInternal(team) })
}

// SetEnabled stores the enabled flag and emits a change event.
func (c *ProtocolCore) SetEnabled(enabled bool) {
	c.enqueue(func(c *ProtocolCore) { c.setEnabledInternal(enabled) })
}

// SetEmergencyStop stores the flag, always emits e_stop_fired, and -
// when setting true - (re)arms a 500ms auto-clear.
func (c *ProtocolCore) SetEmergencyStop(stop bool) {
	c.enqueue(func(c *ProtocolCore) { c.setEmergencyStopInternal(stop) })
}

// SetControlMode stores the mode unless emergency_stop is active, in
// which case the call is silently ignored (spec §4.1).
func (c *ProtocolCore) SetControlMode(mode ControlMode) {
	c.enqueue(func(c *ProtocolCore) { c.setControlModeInternal(mode) })
}

// SetAlliance updates the match-position slot and emits a change event
// if it actually changed.
func (c *ProtocolCore) SetAlliance(alliance Alliance) {
	c.enqueue(func(c *ProtocolCore) {
		c.mu.Lock()
		changed := c.alliance != alliance
		c.alliance = alliance
		c.mu.Unlock()
		if changed {
			c.publish(EventAllianceChanged, alliance)
		}
	})
}

// SetPacketObserver installs fn to be called with every raw datagram the
// core sends or receives, for diagnostics capture. Pass nil to disable.
// Safe to call at any time; takes effect immediately.
func (c *ProtocolCore) SetPacketObserver(fn PacketObserver) {
	c.enqueue(func(c *ProtocolCore) { c.observer = fn })
}

// SetRobotAddress pins the robot endpoint, bypassing the sweep. Passing
// "" unpins and resumes sweeping.
func (c *ProtocolCore) SetRobotAddress(addr string) {
	c.enqueue(func(c *ProtocolCore) {
		c.mu.Lock()
		c.robotAddrPinned = addr != ""
		c.mu.Unlock()
		c.sock.PinAddress(addr)
	})
}

// ---- Getters (safe from any goroutine) -----------------------------------

func (c *ProtocolCore) Team() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.team
}

func (c *ProtocolCore) Alliance() Alliance {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.alliance
}

func (c *ProtocolCore) ControlMode() ControlMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.controlMode
}

func (c *ProtocolCore) Enabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enabled
}

func (c *ProtocolCore) EmergencyStop() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.emergencyStop
}

func (c *ProtocolCore) Operating() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.operating
}

func (c *ProtocolCore) RobotCode() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.robotCode
}

func (c *ProtocolCore) RadioConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.radioConnected
}

func (c *ProtocolCore) VoltageBrownout() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.voltageBrownout
}

func (c *ProtocolCore) Voltage() (string, float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.voltageStr, c.voltageFloat
}

func (c *ProtocolCore) CommStatus() CommStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.commStatus
}

func (c *ProtocolCore) SendDatetime() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sendDatetime
}

func (c *ProtocolCore) SentFMSPackets() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sentFMSPackets
}

func (c *ProtocolCore) SentRobotPackets() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sentRobotPkts
}

func (c *ProtocolCore) RobotIPs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.robotIPs...)
}

func (c *ProtocolCore) RadioIPs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.radioIPs...)
}

func (c *ProtocolCore) InterfaceCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.interfaceCount
}

// ---- Packet entry points (run on the socket manager's receive-loop
// goroutines; enqueue onto the actor loop before touching any field) ----

func (c *ProtocolCore) onRobotDatagram(data []byte) {
	c.enqueue(func(c *ProtocolCore) { c.handleRobotDatagram(data) })
}

func (c *ProtocolCore) onFMSDatagram(data []byte) {
	c.enqueue(func(c *ProtocolCore) { c.handleFMSDatagram(data) })
}

func (c *ProtocolCore) handleRobotDatagram(data []byte) {
	if c.observer != nil {
		c.observer("inbound", "robot", data)
	}
	ok := c.adapter.ParseRobotPacket(data, coreSetters{c})
	if !ok {
		// Malformed input: discard, watchdog NOT restarted (spec §7).
		return
	}
	// Watchdog restarts on every successful decode regardless of state
	// (spec §4.5); the Partial->Full transition itself is decode-gated,
	// but Failing->Partial is prober-gated only (spec §4.4) so a decode
	// arriving before the prober catches up does not skip ahead.
	c.watchdog.Restart()
	if c.commStatus == Partial {
		c.transitionToFull()
	}
}

func (c *ProtocolCore) handleFMSDatagram(data []byte) {
	if c.observer != nil {
		c.observer("inbound", "fms", data)
	}
	c.adapter.ParseFMSPacket(data, coreSetters{c})
}

// ---- Watchdog / prober callbacks (run on their own goroutines) ----------

func (c *ProtocolCore) onWatchdogFired() {
	c.enqueue(func(c *ProtocolCore) {
		if c.commStatus == Full {
			c.transitionToFailing()
		}
	})
}

func (c *ProtocolCore) onRadioTransition(s prober.State) {
	c.enqueue(func(c *ProtocolCore) {
		c.mu.Lock()
		c.radioConnected = s == prober.Connected
		c.mu.Unlock()
		c.publish(EventRadioConnectedChanged, c.radioConnected)
	})
}

func (c *ProtocolCore) onRobotTransition(s prober.State) {
	c.enqueue(func(c *ProtocolCore) {
		if s == prober.Connected && c.commStatus == Failing {
			c.transitionToPartial()
		}
	})
}

func (c *ProtocolCore) publish(eventType string, data interface{}) {
	if c.eb != nil {
		c.eb.PublishData(eventType, data)
	}
}

func (c *ProtocolCore) logf(format string, args ...interface{}) {
	logging.Print(format, args...)
}
