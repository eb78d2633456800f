// Package core implements the Protocol Core (spec §4.1): the orchestrator
// that ties the clock, discovery, socket manager, probers, watchdog, input
// aggregator, and a pluggable adapter into one session's control-and-
// telemetry link. It is the 35%-of-budget centerpiece the rest of the
// repository's components exist to serve.
package core

import (
	"sync"
	"time"

	"dspc/adapter"
	"dspc/clock"
	"dspc/eventbus"
	"dspc/input"
	"dspc/prober"
	"dspc/socketmgr"
	"dspc/watchdog"
)

// Alliance is one of the six match-position slots (spec §3).
type Alliance string

const (
	Red1  Alliance = "Red1"
	Red2  Alliance = "Red2"
	Red3  Alliance = "Red3"
	Blue1 Alliance = "Blue1"
	Blue2 Alliance = "Blue2"
	Blue3 Alliance = "Blue3"
)

// ControlMode is the robot's operating mode (spec §3).
type ControlMode string

const (
	Invalid    ControlMode = "Invalid"
	Teleop     ControlMode = "Teleop"
	Autonomous ControlMode = "Autonomous"
	Test       ControlMode = "Test"
)

// CommStatus is the connection state machine's state (spec §4.1).
type CommStatus string

const (
	Failing CommStatus = "Failing"
	Partial CommStatus = "Partial"
	Full    CommStatus = "Full"
)

// Event change-kinds published on the core's EventBus (design note §9:
// "a subscribable event stream keyed by change-kind").
const (
	EventTeamChanged           = "team_changed"
	EventAllianceChanged       = "alliance_changed"
	EventEnabledChanged        = "enabled_changed"
	EventEmergencyStopChanged  = "emergency_stop_changed"
	EventEStopFired            = "e_stop_fired"
	EventControlModeChanged    = "control_mode_changed"
	EventCommStatusChanged     = "comm_status_changed"
	EventVoltageChanged        = "voltage_changed"
	EventRobotCodeChanged      = "robot_code_changed"
	EventRadioConnectedChanged = "radio_connected_changed"
	EventPacketSent            = "packet_sent"
	EventNotice                = "notice"
)

const (
	watchdogTimeoutFailing  = 500 * time.Millisecond
	watchdogTimeoutFull     = 1000 * time.Millisecond
	eStopClearAfter         = 500 * time.Millisecond
	resetCeremonyDelay      = 200 * time.Millisecond
	initializeCeremonyDelay = 800 * time.Millisecond
)

// ProtocolCore is one operator session's control-and-telemetry link to a
// single robot. All mutation happens on the core's own goroutine (the
// "actor loop", §5 of SPEC_FULL.md); every exported setter marshals its
// work onto that loop via a command channel, so core state has a single
// writer. The RWMutex below exists only so getters can read from other
// goroutines.
type ProtocolCore struct {
	adapter adapter.Adapter
	eb      eventbus.EventBus
	clk     clock.Clock
	agg     *input.Aggregator
	sock    *socketmgr.Manager

	watchdog    *watchdog.Watchdog
	radioProber *prober.Prober
	robotProber *prober.Prober

	commands chan command

	// guards fields read by getters called from outside the loop
	// goroutine; every mutation below happens only inside loop(), so this
	// mutex only ever has one writer at a time (the loop) racing readers.
	mu sync.RWMutex

	team            int
	alliance        Alliance
	controlMode     ControlMode
	enabled         bool
	emergencyStop   bool
	operating       bool
	robotCode       bool
	radioConnected  bool
	voltageBrownout bool
	voltageStr      string
	voltageFloat    float64
	commStatus      CommStatus
	sendDatetime    bool
	sentFMSPackets  uint64
	sentRobotPkts   uint64
	robotIPs        []string
	radioIPs        []string
	interfaceCount  int
	robotAddrPinned bool

	eStopClearTimer   clock.Timer
	fmsCadenceTimer   clock.Timer
	robotCadenceTimer clock.Timer

	observer PacketObserver
}

// PacketObserver is notified of every raw datagram the core sends or
// receives, for diagnostics capture (packetlog). It is called
// synchronously on the loop goroutine, outside the adapter's decode call:
// a slow observer delays the loop, and a panic in it is not recovered.
// direction is "inbound"/"outbound"; channel is "robot"/"fms".
type PacketObserver func(direction, channel string, data []byte)
